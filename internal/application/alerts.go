package application

import (
	"context"
	"time"

	"pairscan-service/internal/domain"

	"go.uber.org/zap"
)

// AlertEmitter produces at most one alert per key per cooldown window.
type AlertEmitter struct {
	Cooldowns CooldownStore
	Window    time.Duration
	Threshold float64
	Log       *zap.Logger
}

// MaybeAlert returns an alert for p when delta clears the threshold and the pair is
// not cooling down. Market-cap eligibility is the caller's decision.
func (e *AlertEmitter) MaybeAlert(ctx context.Context, category domain.Category, p domain.TradingPair, delta float64, now time.Time) *domain.Alert {
	if delta < e.Threshold {
		return nil
	}
	ok, err := e.Cooldowns.Reserve(ctx, cooldownKey(category, p.PairAddress), now, e.Window)
	if err != nil {
		if e.Log != nil {
			e.Log.Warn("alert.cooldown_failed", zap.String("pair", p.PairAddress), zap.Error(err))
		}
		return nil
	}
	if !ok {
		return nil
	}
	var m5 float64
	if p.Volume.M5 != nil {
		m5 = *p.Volume.M5
	}
	return &domain.Alert{
		Category:        category,
		PairAddress:     p.PairAddress,
		BaseSymbol:      p.BaseToken.Symbol,
		QuoteSymbol:     p.QuoteToken.Symbol,
		VolumeChangePct: delta,
		VolumeM5:        m5,
		URL:             p.CanonicalURL(),
		EmittedAt:       now,
	}
}

func cooldownKey(category domain.Category, addr string) string {
	return string(category) + ":" + addr
}
