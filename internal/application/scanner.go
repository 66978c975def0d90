package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pairscan-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ScannerService owns every piece of scanner state: per-category stores, volume
// history, alert cooldowns and the snapshot cache. Construct one per process.
type ScannerService struct {
	registry  domain.QuoteRegistry
	source    *PairSource
	cooldowns CooldownStore
	recorder  Recorder
	clock     Clock
	approx    ApproxPolicy
	log       *zap.Logger
	cache     *SnapshotCache

	flight singleflight.Group
	mu     sync.Mutex
	states map[domain.Category]*categoryState
}

type categoryState struct {
	store   *PairStore
	history *VolumeHistory
	alerts  *AlertEmitter
}

type Option func(*ScannerService)

func WithClock(c Clock) Option               { return func(s *ScannerService) { s.clock = c } }
func WithCooldowns(c CooldownStore) Option   { return func(s *ScannerService) { s.cooldowns = c } }
func WithRecorder(r Recorder) Option         { return func(s *ScannerService) { s.recorder = r } }
func WithLogger(l *zap.Logger) Option        { return func(s *ScannerService) { s.log = l } }
func WithApproxPolicy(p ApproxPolicy) Option { return func(s *ScannerService) { s.approx = p } }
func WithCacheTTL(ttl time.Duration) Option  { return func(s *ScannerService) { s.cache = NewSnapshotCache(ttl) } }

func NewScannerService(registry domain.QuoteRegistry, searcher PairSearcher, lister TokenLister, opts ...Option) *ScannerService {
	s := &ScannerService{
		registry: registry,
		source:   &PairSource{Searcher: searcher, Lister: lister, MaxScan: MaxScanResults},
		states:   map[domain.Category]*categoryState{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.cooldowns == nil {
		s.cooldowns = NewMemoryCooldowns()
	}
	if s.recorder == nil {
		s.recorder = NoopRecorder{}
	}
	if s.approx == nil {
		s.approx = UniformHourApprox
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.cache == nil {
		s.cache = NewSnapshotCache(SnapshotTTL)
	}
	return s
}

// GetScannerData returns the category's snapshot, refreshing it when the cached one
// is older than the TTL. Concurrent callers for one category share a single refresh.
// A failed refresh leaves the cached snapshot untouched and returns the error.
func (s *ScannerService) GetScannerData(ctx context.Context, category domain.Category) (domain.Snapshot, error) {
	profile, ok := s.registry.Profile(category)
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, category)
	}
	now := s.clock.Now()

	if profile.Mode == domain.ModeDisabled {
		if snap, ok := s.cache.Last(category); ok {
			s.recorder.CacheHit(category)
			return snap, nil
		}
		snap := domain.Snapshot{Category: category, Pairs: []domain.TradingPair{}, Alerts: []domain.Alert{}, FetchedAt: now}
		s.cache.Put(snap)
		return snap, nil
	}

	if snap, ok := s.cache.Fresh(category, now); ok {
		s.recorder.CacheHit(category)
		return snap, nil
	}

	v, err, _ := s.flight.Do(string(category), func() (any, error) {
		if snap, ok := s.cache.Fresh(category, s.clock.Now()); ok {
			return snap, nil
		}
		return s.refresh(context.WithoutCancel(ctx), profile)
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return v.(domain.Snapshot), nil
}

func (s *ScannerService) refresh(ctx context.Context, profile domain.Profile) (domain.Snapshot, error) {
	category := profile.Category
	started := time.Now()
	now := s.clock.Now()
	log := s.log.With(zap.String("category", string(category)))

	candidates, err := s.source.FetchCandidates(ctx, profile)
	if err != nil {
		s.recorder.RefreshDone(category, time.Since(started), err)
		log.Warn("scan.refresh_failed", zap.Error(err))
		return domain.Snapshot{}, err
	}

	st := s.state(category)
	classifier := ClassifierFor(profile.Classifier)
	spike, alerting := classifier.(SpikeClassifier)
	calc := DeltaCalculator{History: st.history, Approx: s.approx}

	fresh := make([]domain.TradingPair, 0, len(candidates))
	alerts := []domain.Alert{}
	for _, p := range candidates {
		if p.Volume.M5 != nil {
			st.history.Record(p.PairAddress, *p.Volume.M5, now)
		}
		delta := calc.Compute(p, now)
		if profile.Mode == domain.ModeSearch || p.VolumeChangePct == nil {
			p.VolumeChangePct = delta
		}

		v := classifier.Classify(p, now)
		p.Signal = v.Signal
		if v.Include {
			fresh = append(fresh, p)
		}

		if alerting && delta != nil && spike.MarketCapEligible(p) {
			if a := st.alerts.MaybeAlert(ctx, category, p, *delta, now); a != nil {
				alerts = append(alerts, *a)
			}
		}
	}

	pairs := st.store.Merge(fresh)
	snap := domain.Snapshot{Category: category, Pairs: pairs, Alerts: alerts, FetchedAt: now}
	s.cache.Put(snap)

	s.recorder.StoreSize(category, len(pairs))
	s.recorder.AlertsEmitted(category, len(alerts))
	s.recorder.RefreshDone(category, time.Since(started), nil)
	log.Debug("scan.refreshed",
		zap.Int("candidates", len(candidates)),
		zap.Int("included", len(fresh)),
		zap.Int("stored", len(pairs)),
		zap.Int("alerts", len(alerts)),
	)
	return snap, nil
}

func (s *ScannerService) state(category domain.Category) *categoryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[category]
	if !ok {
		st = &categoryState{
			store:   NewPairStore(MaxStoredPairs),
			history: NewVolumeHistory(HistoryRetention, DeltaLookback),
			alerts: &AlertEmitter{
				Cooldowns: s.cooldowns,
				Window:    AlertCooldown,
				Threshold: SpikeThreshold,
				Log:       s.log,
			},
		}
		s.states[category] = st
	}
	return st
}

// Registry exposes the quote registry the service was built with.
func (s *ScannerService) Registry() domain.QuoteRegistry { return s.registry }
