package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pairscan-service/internal/domain"
)

// PairSource fetches candidate pairs for a category using its profile's retrieval mode.
type PairSource struct {
	Searcher PairSearcher
	Lister   TokenLister
	MaxScan  int
}

// FetchCandidates returns at most MaxScan normalized pairs. Provider failures come
// back as *domain.UpstreamError; a missing credential stays a *domain.ConfigurationError.
func (s *PairSource) FetchCandidates(ctx context.Context, profile domain.Profile) ([]domain.TradingPair, error) {
	var (
		pairs []domain.TradingPair
		err   error
	)
	switch profile.Mode {
	case domain.ModeSearch:
		pairs, err = s.search(ctx, profile)
	case domain.ModeListing:
		pairs, err = s.list(ctx, profile)
	default:
		return nil, nil
	}
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		var upErr *domain.UpstreamError
		if errors.As(err, &upErr) {
			return nil, err
		}
		return nil, &domain.UpstreamError{Category: profile.Category, Message: err.Error(), Err: err}
	}
	if len(pairs) > s.maxScan() {
		pairs = pairs[:s.maxScan()]
	}
	return pairs, nil
}

func (s *PairSource) search(ctx context.Context, profile domain.Profile) ([]domain.TradingPair, error) {
	if s.Searcher == nil {
		return nil, fmt.Errorf("no pair searcher configured")
	}
	raw, err := s.Searcher.SearchPairs(ctx, profile.SearchQuery())
	if err != nil {
		return nil, err
	}
	out := make([]domain.TradingPair, 0, len(raw))
	for _, p := range raw {
		if p.ChainID != profile.ChainID {
			continue
		}
		if p.QuoteToken.Address == "" || !domain.SameAddress(p.QuoteToken.Address, profile.Quote.Address) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Volume24() > out[j].Volume24() })
	return out, nil
}

func (s *PairSource) list(ctx context.Context, profile domain.Profile) ([]domain.TradingPair, error) {
	if s.Lister == nil {
		return nil, fmt.Errorf("no token lister configured")
	}
	return s.Lister.ListTokens(ctx, ListingQuery{
		NetworkID:   profile.NetworkID,
		Launchpads:  profile.Launchpads,
		RankBy:      "createdAt",
		Descending:  true,
		Limit:       s.maxScan(),
		ChainID:     profile.ChainID,
		QuoteSymbol: profile.QuoteSymbol,
	})
}

func (s *PairSource) maxScan() int {
	if s.MaxScan <= 0 {
		return MaxScanResults
	}
	return s.MaxScan
}
