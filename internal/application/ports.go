package application

import (
	"context"
	"time"

	"pairscan-service/internal/domain"
)

// PairSearcher is the free-text pair-search provider.
type PairSearcher interface {
	SearchPairs(ctx context.Context, query string) ([]domain.TradingPair, error)
}

// ListingQuery is a filtered, ranked token listing request.
type ListingQuery struct {
	NetworkID   int
	Launchpads  []string
	RankBy      string
	Descending  bool
	Limit       int
	ChainID     string
	QuoteSymbol string
}

// TokenLister is the credentialed token-listing provider. It returns
// *domain.ConfigurationError when its credential is missing.
type TokenLister interface {
	ListTokens(ctx context.Context, q ListingQuery) ([]domain.TradingPair, error)
}

// CooldownStore records the last alert per key. Reserve returns true and
// records now only when no alert was recorded within window.
type CooldownStore interface {
	Reserve(ctx context.Context, key string, now time.Time, window time.Duration) (bool, error)
}

// AlertSink receives alerts emitted by a refresh.
type AlertSink interface {
	Publish(ctx context.Context, alerts []domain.Alert) error
}

// AlertReader lists journaled alerts, newest first.
type AlertReader interface {
	Recent(ctx context.Context, category domain.Category, limit int) ([]domain.Alert, error)
}

// Worker drives background refreshes. Start returns once ctx is canceled and
// every loop it launched has exited.
type Worker interface {
	Start(ctx context.Context)
}
