package application

import (
	"sort"
	"strings"

	"pairscan-service/internal/domain"
)

// MergePairs folds fresh pairs into the previously stored set and returns the new
// stored set: replace-by-address, sticky signal, deterministic order, trimmed to limit.
// Neither input is modified.
func MergePairs(stored, fresh []domain.TradingPair, limit int) []domain.TradingPair {
	byAddr := make(map[string]domain.TradingPair, len(stored)+len(fresh))
	for _, p := range stored {
		byAddr[p.PairAddress] = p
	}
	for _, p := range fresh {
		if prev, ok := byAddr[p.PairAddress]; ok && prev.Signal {
			p.Signal = true
		}
		byAddr[p.PairAddress] = p
	}

	merged := make([]domain.TradingPair, 0, len(byAddr))
	for _, p := range byAddr {
		merged = append(merged, p)
	}
	sort.Slice(merged, func(i, j int) bool { return pairLess(merged[i], merged[j]) })

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func pairLess(a, b domain.TradingPair) bool {
	if a.Signal != b.Signal {
		return a.Signal
	}
	ac, bc := a.CreatedAtOrZero(), b.CreatedAtOrZero()
	if !ac.Equal(bc) {
		return ac.After(bc)
	}
	if av, bv := a.Volume24(), b.Volume24(); av != bv {
		return av > bv
	}
	return strings.Compare(a.PairAddress, b.PairAddress) < 0
}

// PairStore is the per-category persistent result set.
type PairStore struct {
	limit int
	pairs []domain.TradingPair
}

func NewPairStore(limit int) *PairStore { return &PairStore{limit: limit} }

// Merge applies MergePairs and keeps the result; evicted pairs are forgotten.
func (s *PairStore) Merge(fresh []domain.TradingPair) []domain.TradingPair {
	s.pairs = MergePairs(s.pairs, fresh, s.limit)
	return append([]domain.TradingPair(nil), s.pairs...)
}

func (s *PairStore) Len() int { return len(s.pairs) }
