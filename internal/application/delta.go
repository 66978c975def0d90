package application

import (
	"time"

	"pairscan-service/internal/domain"
)

// ApproxPolicy estimates the five-minute volume change from aggregate windows
// when history cannot.
type ApproxPolicy func(p domain.TradingPair) *float64

// UniformHourApprox assumes volume is spread evenly over the hour, so the expected
// five-minute volume is h1/12. This is a heuristic, not a measurement.
func UniformHourApprox(p domain.TradingPair) *float64 {
	m5, h1 := p.Volume.M5, p.Volume.H1
	if m5 == nil || h1 == nil || *h1 <= 0 {
		return nil
	}
	avg5 := *h1 / 12
	if avg5 <= 0 {
		return nil
	}
	d := (*m5 - avg5) / avg5
	return &d
}

type DeltaCalculator struct {
	History *VolumeHistory
	Approx  ApproxPolicy
}

// Compute prefers the history lookback and falls back to the approximation.
func (c DeltaCalculator) Compute(p domain.TradingPair, now time.Time) *float64 {
	if c.History != nil {
		if d := c.History.LookupDelta(p.PairAddress, now); d != nil {
			return d
		}
	}
	approx := c.Approx
	if approx == nil {
		approx = UniformHourApprox
	}
	return approx(p)
}
