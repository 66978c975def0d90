package pg

import (
	"context"
	"fmt"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"
	"pairscan-service/internal/infrastructure/logx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AlertRepo journals emitted alerts so they survive restarts and can be listed.
type AlertRepo struct{ db *DB }

func NewAlertRepo(db *DB) *AlertRepo { return &AlertRepo{db: db} }

var (
	_ application.AlertSink   = (*AlertRepo)(nil)
	_ application.AlertReader = (*AlertRepo)(nil)
)

func (r *AlertRepo) Publish(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	const ins = `
        INSERT INTO scanner_alerts(id, category, pair_address, base_symbol, quote_symbol,
                                   volume_change_pct, volume_m5, url, emitted_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (category, pair_address, emitted_at) DO NOTHING`
	log := logx.L().With(
		zap.String("repo", "alert"),
		zap.String("operation", "Publish"),
		zap.Int("count", len(alerts)),
	)

	batch := &pgx.Batch{}
	for _, a := range alerts {
		batch.Queue(ins, uuid.NewString(), string(a.Category), a.PairAddress, a.BaseSymbol, a.QuoteSymbol,
			a.VolumeChangePct, a.VolumeM5, a.URL, a.EmittedAt)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	var inserted int64
	for range alerts {
		tag, err := br.Exec()
		if err != nil {
			log.Error("sql.exec_failed", zap.Error(err))
			return fmt.Errorf("insert alert: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	log.Debug("sql.exec_success", zap.Int64("rows_affected", inserted))
	return nil
}

func (r *AlertRepo) Recent(ctx context.Context, category domain.Category, limit int) ([]domain.Alert, error) {
	const q = `
        SELECT category, pair_address, base_symbol, quote_symbol, volume_change_pct, volume_m5, url, emitted_at
        FROM scanner_alerts
        WHERE category = $1
        ORDER BY emitted_at DESC, pair_address ASC
        LIMIT $2`
	rows, err := r.db.Pool.Query(ctx, q, string(category), limit)
	if err != nil {
		logx.L().Error("sql.query_failed", zap.String("repo", "alert"), zap.String("operation", "Recent"), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []domain.Alert{}
	for rows.Next() {
		var (
			a   domain.Alert
			cat string
		)
		if err := rows.Scan(&cat, &a.PairAddress, &a.BaseSymbol, &a.QuoteSymbol,
			&a.VolumeChangePct, &a.VolumeM5, &a.URL, &a.EmittedAt); err != nil {
			return nil, err
		}
		a.Category = domain.Category(cat)
		a.EmittedAt = a.EmittedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}
