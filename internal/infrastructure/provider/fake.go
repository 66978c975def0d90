package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"
)

var (
	_ application.PairSearcher = (*Fake)(nil)
	_ application.TokenLister  = (*Fake)(nil)
)

// Fake serves a fixed set of synthetic pairs whose five-minute volume grows on
// every call. It backs local runs without upstream credentials.
type Fake struct {
	mu    sync.Mutex
	now   func() time.Time
	calls int
}

func NewFake() *Fake { return &Fake{now: time.Now} }

func (f *Fake) SearchPairs(_ context.Context, query string) ([]domain.TradingPair, error) {
	quote := domain.Token{Address: domain.DefaultWETHQuote, Symbol: "WETH"}
	if strings.Contains(query, "zora") || strings.Contains(query, "printr") {
		quote = domain.Token{Address: domain.DefaultUSDCQuote, Symbol: "USDC"}
	}
	return f.pairs(quote, domain.ChainBase), nil
}

func (f *Fake) ListTokens(_ context.Context, q application.ListingQuery) ([]domain.TradingPair, error) {
	return f.pairs(domain.Token{Address: domain.ZeroAddress, Symbol: q.QuoteSymbol}, q.ChainID), nil
}

func (f *Fake) pairs(quote domain.Token, chain string) []domain.TradingPair {
	f.mu.Lock()
	f.calls++
	calls := f.calls
	f.mu.Unlock()

	now := f.now().UTC()
	out := make([]domain.TradingPair, 0, 3)
	for i := 0; i < 3; i++ {
		created := now.Add(-time.Duration(i+1) * time.Hour)
		m5 := float64(1000 * (calls + i))
		out = append(out, domain.TradingPair{
			PairAddress: fmt.Sprintf("0xfake%02d", i),
			ChainID:     chain,
			BaseToken:   domain.Token{Address: fmt.Sprintf("0xtoken%02d", i), Symbol: fmt.Sprintf("FAKE%d", i)},
			QuoteToken:  quote,
			Volume: domain.Windows{
				M5:  domain.Float(m5),
				H1:  domain.Float(12000),
				H24: domain.Float(float64(100000 * (3 - i))),
			},
			MarketCap: domain.Float(float64(20000 * (i + 1))),
			CreatedAt: &created,
		})
	}
	return out
}
