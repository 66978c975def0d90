package pg_test

import (
	"context"
	"os"
	"testing"
	"time"

	"pairscan-service/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap/zaptest"
)

// withPostgres starts a throwaway Postgres and returns a migrated journal DB.
// It skips unless TESTCONTAINERS is set.
func withPostgres(t *testing.T) *pg.DB {
	t.Helper()
	if os.Getenv("TESTCONTAINERS") == "" {
		t.Skip("set TESTCONTAINERS=1 to run the journal against a real Postgres")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("pairscan"),
		postgres.WithUsername("scanner"),
		postgres.WithPassword("scanner"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	settings := pg.DefaultPoolSettings()
	settings.ReadyWithin = 30 * time.Second
	db, err := pg.Connect(ctx, dsn, settings)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	log := zaptest.NewLogger(t)
	require.NoError(t, db.Migrate(ctx, log))
	// Second run is a no-op.
	require.NoError(t, db.Migrate(ctx, log))
	return db
}
