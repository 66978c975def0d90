package application

import (
	"time"

	"pairscan-service/internal/domain"
)

// Verdict is a per-poll decision. Include controls whether the pair enters the
// merge; Signal is this poll's flag before stickiness is applied.
type Verdict struct {
	Include bool
	Signal  bool
}

type Classifier interface {
	Classify(p domain.TradingPair, now time.Time) Verdict
}

// SpikeClassifier admits pairs whose volume delta and market cap both qualify.
type SpikeClassifier struct {
	Threshold     float64
	MarketCapCeil float64
}

func (c SpikeClassifier) Classify(p domain.TradingPair, _ time.Time) Verdict {
	ok := c.Eligible(p)
	return Verdict{Include: ok, Signal: ok}
}

func (c SpikeClassifier) Eligible(p domain.TradingPair) bool {
	return p.VolumeChangePct != nil && *p.VolumeChangePct >= c.Threshold && c.MarketCapEligible(p)
}

func (c SpikeClassifier) MarketCapEligible(p domain.TradingPair) bool {
	mc := p.MarketCapOrFDV()
	return mc != nil && *mc <= c.MarketCapCeil
}

// VelocityClassifier flags young pairs with a volume spike, or a small cap with a price jump.
type VelocityClassifier struct {
	MaxAge          time.Duration
	VolumeThreshold float64
	MarketCapCeil   float64
	PriceThreshold  float64
}

func (c VelocityClassifier) Classify(p domain.TradingPair, now time.Time) Verdict {
	young := true
	if p.CreatedAt != nil {
		young = now.Sub(*p.CreatedAt) <= c.MaxAge
	}
	volumeSpike := p.VolumeChangePct != nil && *p.VolumeChangePct >= c.VolumeThreshold
	capSpike := p.MarketCap != nil && *p.MarketCap <= c.MarketCapCeil &&
		p.PriceChange.M5 != nil && *p.PriceChange.M5 >= c.PriceThreshold
	return Verdict{Include: true, Signal: young && (volumeSpike || capSpike)}
}

// PassthroughClassifier includes everything and flags nothing.
type PassthroughClassifier struct{}

func (PassthroughClassifier) Classify(domain.TradingPair, time.Time) Verdict {
	return Verdict{Include: true}
}

// ClassifierFor maps a profile's classifier kind to its default implementation.
func ClassifierFor(kind domain.ClassifierKind) Classifier {
	switch kind {
	case domain.ClassifierSpike:
		return SpikeClassifier{Threshold: SpikeThreshold, MarketCapCeil: SpikeMarketCapCeil}
	case domain.ClassifierVelocity:
		return VelocityClassifier{
			MaxAge:          VelocityMaxAge,
			VolumeThreshold: VelocityVolumeThreshold,
			MarketCapCeil:   VelocityMarketCapCeil,
			PriceThreshold:  VelocityPriceThreshold,
		}
	default:
		return PassthroughClassifier{}
	}
}
