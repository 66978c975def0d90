package domain

import "time"

type Alert struct {
	Category        Category
	PairAddress     string
	BaseSymbol      string
	QuoteSymbol     string
	VolumeChangePct float64
	VolumeM5        float64
	URL             string
	EmittedAt       time.Time
}

// Snapshot is the externally visible result of one refresh. Treat as read-only.
type Snapshot struct {
	Category  Category
	Pairs     []TradingPair
	Alerts    []Alert
	FetchedAt time.Time
}

// Clone returns a copy whose slices can be reordered or filtered freely.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Pairs = append([]TradingPair(nil), s.Pairs...)
	out.Alerts = append([]Alert(nil), s.Alerts...)
	return out
}
