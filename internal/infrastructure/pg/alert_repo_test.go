package pg_test

import (
	"context"
	"testing"
	"time"

	"pairscan-service/internal/domain"
	"pairscan-service/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestAlertRepo_PublishAndRecent(t *testing.T) {
	db := withPostgres(t)

	repo := pg.NewAlertRepo(db)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	alert := func(addr string, at time.Time) domain.Alert {
		return domain.Alert{
			Category:        domain.CategoryWETH,
			PairAddress:     addr,
			BaseSymbol:      "TKN",
			QuoteSymbol:     "WETH",
			VolumeChangePct: 0.5,
			VolumeM5:        1500,
			URL:             "https://dexscreener.com/base/" + addr,
			EmittedAt:       at,
		}
	}

	require.NoError(t, repo.Publish(ctx, []domain.Alert{
		alert("0xaaa", base),
		alert("0xbbb", base.Add(time.Minute)),
	}))
	// Same emission replayed is ignored.
	require.NoError(t, repo.Publish(ctx, []domain.Alert{alert("0xaaa", base)}))
	require.NoError(t, repo.Publish(ctx, nil))

	got, err := repo.Recent(ctx, domain.CategoryWETH, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "0xbbb", got[0].PairAddress)
	require.Equal(t, base.Add(time.Minute), got[0].EmittedAt)
	require.Equal(t, "0xaaa", got[1].PairAddress)

	got, err = repo.Recent(ctx, domain.CategoryWETH, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	got, err = repo.Recent(ctx, domain.CategoryZora, 10)
	require.NoError(t, err)
	require.Empty(t, got)
}
