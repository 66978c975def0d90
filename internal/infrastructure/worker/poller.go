package worker

import (
	"context"
	"sync"
	"time"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Scanner is the slice of the scanner service the poller drives.
type Scanner interface {
	GetScannerData(ctx context.Context, category domain.Category) (domain.Snapshot, error)
}

var _ application.Worker = (*Poller)(nil)

// Poller keeps categories warm by refreshing each one on its own loop and hands
// emitted alerts to the sink. A failing category is spaced out with exponential
// backoff and returns to the regular interval after its next success.
type Poller struct {
	Scanner    Scanner
	Sink       application.AlertSink
	Categories []domain.Category
	PollEvery  time.Duration
	MaxBackoff time.Duration
	Log        *zap.Logger

	mu        sync.Mutex
	published map[domain.Category]time.Time
}

func (p *Poller) Start(ctx context.Context) {
	log := p.logger()
	if p.PollEvery <= 0 {
		p.PollEvery = 5 * time.Second
	}
	if p.MaxBackoff <= 0 {
		p.MaxBackoff = 12 * p.PollEvery
	}

	log.Info("poller_started",
		zap.Duration("poll_every", p.PollEvery),
		zap.Int("categories", len(p.Categories)),
	)
	var wg sync.WaitGroup
	for _, c := range p.Categories {
		wg.Add(1)
		go func(c domain.Category) {
			defer wg.Done()
			p.loop(ctx, c)
		}(c)
	}
	wg.Wait()
	log.Info("poller_stopped")
}

func (p *Poller) loop(ctx context.Context, category domain.Category) {
	log := p.logger().With(zap.String("category", string(category)))

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.PollEvery
	bo.MaxInterval = p.MaxBackoff
	bo.MaxElapsedTime = 0
	bo.Reset()

	timer := time.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		wait := p.PollEvery
		if err := p.PollOnce(ctx, category); err != nil {
			wait = bo.NextBackOff()
			log.Warn("poll_failed", zap.Error(err), zap.Duration("retry_in", wait))
		} else {
			bo.Reset()
		}
		timer.Reset(wait)
	}
}

// PollOnce refreshes one category and publishes the alerts of a snapshot it has
// not published before. Sink failures are logged and do not fail the poll.
func (p *Poller) PollOnce(ctx context.Context, category domain.Category) error {
	snap, err := p.Scanner.GetScannerData(ctx, category)
	if err != nil {
		return err
	}
	if len(snap.Alerts) == 0 || p.Sink == nil || !p.markPublished(category, snap.FetchedAt) {
		return nil
	}
	if err := p.Sink.Publish(ctx, snap.Alerts); err != nil {
		p.logger().Warn("alert_publish_failed",
			zap.String("category", string(category)),
			zap.Int("alerts", len(snap.Alerts)),
			zap.Error(err),
		)
	}
	return nil
}

func (p *Poller) markPublished(category domain.Category, fetchedAt time.Time) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.published == nil {
		p.published = map[domain.Category]time.Time{}
	}
	if last, ok := p.published[category]; ok && !fetchedAt.After(last) {
		return false
	}
	p.published[category] = fetchedAt
	return true
}

func (p *Poller) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}
