package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"pairscan-service/internal/domain"
)

var (
	ErrProvider = errors.New("provider error")
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type fakeSearcher struct {
	mu      sync.Mutex
	pairs   []domain.TradingPair
	err     error
	calls   int
	queries []string
	gate    chan struct{}
}

func (f *fakeSearcher) SearchPairs(_ context.Context, query string) ([]domain.TradingPair, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.TradingPair(nil), f.pairs...), nil
}

func (f *fakeSearcher) set(pairs []domain.TradingPair, err error) {
	f.mu.Lock()
	f.pairs, f.err = pairs, err
	f.mu.Unlock()
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeLister struct {
	mu      sync.Mutex
	pairs   []domain.TradingPair
	err     error
	calls   int
	queries []ListingQuery
}

func (f *fakeLister) ListTokens(_ context.Context, q ListingQuery) ([]domain.TradingPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return append([]domain.TradingPair(nil), f.pairs...), nil
}

type failingCooldowns struct{}

func (failingCooldowns) Reserve(context.Context, string, time.Time, time.Duration) (bool, error) {
	return false, errors.New("cooldown backend down")
}

type countingRecorder struct {
	mu        sync.Mutex
	refreshes int
	failures  int
	hits      int
	alerts    int
}

func (r *countingRecorder) RefreshDone(_ domain.Category, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refreshes++
	if err != nil {
		r.failures++
	}
}

func (r *countingRecorder) CacheHit(domain.Category) {
	r.mu.Lock()
	r.hits++
	r.mu.Unlock()
}

func (r *countingRecorder) AlertsEmitted(_ domain.Category, n int) {
	r.mu.Lock()
	r.alerts += n
	r.mu.Unlock()
}

func (r *countingRecorder) StoreSize(domain.Category, int) {}

// basePair builds a base-chain WETH-quoted pair.
func basePair(addr string) domain.TradingPair {
	return domain.TradingPair{
		PairAddress: addr,
		ChainID:     domain.ChainBase,
		BaseToken:   domain.Token{Address: "0xbase-" + addr, Symbol: "TKN"},
		QuoteToken:  domain.Token{Address: domain.DefaultWETHQuote, Symbol: "WETH"},
	}
}

func withVolume(p domain.TradingPair, m5, h1, h24 float64) domain.TradingPair {
	p.Volume = domain.Windows{M5: domain.Float(m5), H1: domain.Float(h1), H24: domain.Float(h24)}
	return p
}

func withMarketCap(p domain.TradingPair, mc float64) domain.TradingPair {
	p.MarketCap = domain.Float(mc)
	return p
}

func createdAt(p domain.TradingPair, t time.Time) domain.TradingPair {
	p.CreatedAt = &t
	return p
}

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
