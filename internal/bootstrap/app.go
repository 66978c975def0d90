package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"pairscan-service/internal/application"
	httpserver "pairscan-service/internal/infrastructure/http"
	"pairscan-service/internal/infrastructure/worker"
)

type API struct {
	Addr    string
	Handler http.Handler
}

// InitAPI wires the HTTP API. The API process keeps its own scanner state and
// does not publish alerts; the journal is only read. Its cooldowns are scoped
// so API refreshes never suppress the worker's alerts.
func InitAPI(ctx context.Context) (*API, func(), error) {
	cfg := ProvideConfig()
	log := ProvideLogger()

	cooldowns, cooldownCheck, closeCooldowns, err := ProvideCooldowns(cfg, APICooldownScope)
	if err != nil {
		return nil, nil, err
	}
	var journal Journal
	closeJournal := func() {}
	if cfg.AlertSink == "pg" {
		journal, closeJournal, err = ProvideJournal(ctx, log, cfg)
		if err != nil {
			closeCooldowns()
			return nil, nil, fmt.Errorf("init alert journal: %w", err)
		}
	}

	m := ProvideMetrics()
	scanner := ProvideScanner(cfg, log, cooldowns, m)

	srv := httpserver.NewServer(scanner)
	srv.SetMetrics(m)
	srv.SetReadyCheck(combineChecks(cooldownCheck, journal.Check))
	if journal.Reader != nil {
		srv.SetAlertReader(journal.Reader)
	}

	api := &API{Addr: ":" + cfg.Port, Handler: httpserver.NewRouter(srv)}
	return api, combineCleanups(closeCooldowns, closeJournal), nil
}

type WorkerApp func(ctx context.Context) error

// InitWorkerApp wires the poller that keeps categories warm and publishes alerts.
func InitWorkerApp(ctx context.Context) (WorkerApp, func(), error) {
	cfg := ProvideConfig()
	log := ProvideLogger()

	categories, err := ProvideCategories(cfg)
	if err != nil {
		return nil, nil, err
	}
	cooldowns, _, closeCooldowns, err := ProvideCooldowns(cfg, WorkerCooldownScope)
	if err != nil {
		return nil, nil, err
	}
	journal, closeJournal, err := ProvideJournal(ctx, log, cfg)
	if err != nil {
		closeCooldowns()
		return nil, nil, fmt.Errorf("init alert sink: %w", err)
	}

	scanner := ProvideScanner(cfg, log, cooldowns, application.NoopRecorder{})
	var w application.Worker = &worker.Poller{
		Scanner:    scanner,
		Sink:       journal.Sink,
		Categories: categories,
		PollEvery:  cfg.PollInterval,
		Log:        log.Named("poller"),
	}
	run := func(ctx context.Context) error {
		w.Start(ctx)
		return nil
	}
	return run, combineCleanups(closeCooldowns, closeJournal), nil
}
