package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"pairscan-service/internal/application"
	"pairscan-service/internal/config"
	"pairscan-service/internal/domain"
	"pairscan-service/internal/infrastructure/httpx"
	"pairscan-service/internal/infrastructure/logx"
	"pairscan-service/internal/infrastructure/metrics"
	"pairscan-service/internal/infrastructure/pg"
	"pairscan-service/internal/infrastructure/provider"
	redisstore "pairscan-service/internal/infrastructure/redis"
	"pairscan-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required for ALERT_SINK=pg")

// Check is a dependency ping used for readiness.
type Check func(ctx context.Context) error

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideRegistry(cfg config.Config) domain.QuoteRegistry {
	return domain.NewQuoteRegistry(domain.QuoteOverrides{
		WETHAddress: cfg.WETHQuoteAddress,
		USDCAddress: cfg.USDCQuoteAddress,
	})
}

// ProvideUpstreams builds the search and listing providers. PROVIDER=fake swaps both
// for the synthetic provider.
func ProvideUpstreams(cfg config.Config) (application.PairSearcher, application.TokenLister) {
	if cfg.Provider == "fake" {
		f := provider.NewFake()
		return f, f
	}
	search := &provider.DexScreener{
		BaseURL: cfg.SearchAPIBase,
		Client:  httpx.NewClient("dexscreener", cfg.RequestTimeout, cfg.UpstreamRPS, cfg.UpstreamBurst),
	}
	listing := &provider.Codex{
		URL:    cfg.ListingAPIURL,
		APIKey: cfg.ListingAPIKey,
		Bearer: cfg.ListingBearer,
		Client: httpx.NewClient("codex", cfg.RequestTimeout, cfg.UpstreamRPS, cfg.UpstreamBurst),
	}
	return search, listing
}

func ProvideMetrics() *metrics.Metrics { return metrics.New() }

// Cooldown scopes. The worker owns the unscoped keys so its alerts reach the
// journal; API refreshes reserve under their own scope.
const (
	WorkerCooldownScope = ""
	APICooldownScope    = "api"
)

// ProvideCooldowns returns the in-process store unless COOLDOWN_BACKEND=redis.
func ProvideCooldowns(cfg config.Config, scope string) (application.CooldownStore, Check, func(), error) {
	switch cfg.CooldownBackend {
	case "", "memory":
		return application.NewMemoryCooldowns(), nil, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := redisstore.NewScoped(client, scope)
		return store, store.Ping, func() { _ = client.Close() }, nil
	default:
		return nil, nil, func() {}, fmt.Errorf("unsupported COOLDOWN_BACKEND=%q", cfg.CooldownBackend)
	}
}

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL, pg.DefaultPoolSettings())
	if err != nil {
		return nil, func() {}, err
	}
	if err := db.Migrate(ctx, log); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		log.Info("closing pg")
		db.Close()
	}
	return db, cleanup, nil
}

// Journal bundles the alert sink with its optional reader and readiness check.
type Journal struct {
	Sink   application.AlertSink
	Reader application.AlertReader
	Check  Check
}

// ProvideJournal builds the alert sink selected by ALERT_SINK.
func ProvideJournal(ctx context.Context, log *zap.Logger, cfg config.Config) (Journal, func(), error) {
	switch cfg.AlertSink {
	case "", "log":
		return Journal{Sink: worker.LogSink{Log: log}}, func() {}, nil
	case "pg":
		db, cleanup, err := ProvideDB(ctx, log, cfg)
		if err != nil {
			return Journal{}, func() {}, err
		}
		repo := pg.NewAlertRepo(db)
		return Journal{Sink: repo, Reader: repo, Check: db.Ping}, cleanup, nil
	default:
		return Journal{}, func() {}, fmt.Errorf("unsupported ALERT_SINK=%q", cfg.AlertSink)
	}
}

func ProvideScanner(
	cfg config.Config,
	log *zap.Logger,
	cooldowns application.CooldownStore,
	rec application.Recorder,
) *application.ScannerService {
	search, listing := ProvideUpstreams(cfg)
	return application.NewScannerService(ProvideRegistry(cfg), search, listing,
		application.WithCooldowns(cooldowns),
		application.WithRecorder(rec),
		application.WithLogger(log.Named("scanner")),
	)
}

// ProvideCategories parses POLL_CATEGORIES, rejecting unknown names.
func ProvideCategories(cfg config.Config) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(cfg.PollCategories))
	for _, raw := range cfg.PollCategories {
		c, err := domain.ParseCategory(raw)
		if err != nil {
			return nil, fmt.Errorf("POLL_CATEGORIES: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}

func combineChecks(checks ...Check) Check {
	return func(ctx context.Context) error {
		for _, c := range checks {
			if c == nil {
				continue
			}
			if err := c(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}

func combineCleanups(fns ...func()) func() {
	return func() {
		for i := len(fns) - 1; i >= 0; i-- {
			if fns[i] != nil {
				fns[i]()
			}
		}
	}
}
