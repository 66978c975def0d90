package worker

import (
	"context"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"

	"go.uber.org/zap"
)

var _ application.AlertSink = LogSink{}

// LogSink writes each alert as a structured log line.
type LogSink struct {
	Log *zap.Logger
}

func (s LogSink) Publish(_ context.Context, alerts []domain.Alert) error {
	for _, a := range alerts {
		s.Log.Info("scanner_alert",
			zap.String("category", string(a.Category)),
			zap.String("pair", a.PairAddress),
			zap.String("base", a.BaseSymbol),
			zap.String("quote", a.QuoteSymbol),
			zap.Float64("volume_change_pct", a.VolumeChangePct),
			zap.Float64("volume_m5", a.VolumeM5),
			zap.String("url", a.URL),
			zap.Time("emitted_at", a.EmittedAt),
		)
	}
	return nil
}
