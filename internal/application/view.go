package application

import (
	"sort"
	"time"

	"pairscan-service/internal/domain"
)

type SortOrder string

const (
	SortDefault         SortOrder = ""
	SortLastTransaction SortOrder = "lastTransaction"
)

type TimeWindow string

const (
	WindowAll  TimeWindow = ""
	WindowDay1 TimeWindow = "day1"
)

// ViewOptions shape a snapshot for a consumer; they never touch scanner state.
type ViewOptions struct {
	Sort        SortOrder
	Window      TimeWindow
	SignalsOnly bool
}

// ParseViewOptions maps raw query values; unknown sort or window values fall back to defaults.
func ParseViewOptions(sortRaw, windowRaw, signalsRaw string) ViewOptions {
	var o ViewOptions
	if SortOrder(sortRaw) == SortLastTransaction {
		o.Sort = SortLastTransaction
	}
	if TimeWindow(windowRaw) == WindowDay1 {
		o.Window = WindowDay1
	}
	o.SignalsOnly = signalsRaw == "1" || signalsRaw == "true"
	return o
}

// ApplyView returns a filtered copy of s. Sort and window only apply to search-mode
// categories; SignalsOnly applies everywhere.
func ApplyView(s domain.Snapshot, profile domain.Profile, o ViewOptions, now time.Time) domain.Snapshot {
	out := s.Clone()
	search := profile.Mode == domain.ModeSearch

	kept := out.Pairs[:0]
	for _, p := range out.Pairs {
		if o.SignalsOnly && !p.Signal {
			continue
		}
		if search && o.Window == WindowDay1 && (p.CreatedAt == nil || now.Sub(*p.CreatedAt) > 24*time.Hour) {
			continue
		}
		kept = append(kept, p)
	}
	out.Pairs = kept

	if search && o.Sort == SortLastTransaction {
		sort.SliceStable(out.Pairs, func(i, j int) bool {
			a, b := out.Pairs[i].LastTxnAt, out.Pairs[j].LastTxnAt
			switch {
			case a == nil:
				return false
			case b == nil:
				return true
			default:
				return a.After(*b)
			}
		})
	}
	return out
}
