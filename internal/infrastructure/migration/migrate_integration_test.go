//go:build integration

package migration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/optica/backend/migrations"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("optica_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("optica123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_EmbeddedRoundTrip(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	m, err := NewEmbedded(db, migrations.FS, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Equal(t, uint(20260120100000), version)

	// A second run has nothing to do
	require.NoError(t, m.Up())

	for _, column := range []string{"tax_id", "postal_code", "birth_date", "notes", "version"} {
		ok, err := ColumnExists(ctx, db, "customers", column)
		require.NoError(t, err)
		assert.True(t, ok, column)
	}

	added, err := EnsureColumn(ctx, db, "customers", "notes", "TEXT")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = EnsureColumn(ctx, db, "customers", "referral", "VARCHAR(100)")
	require.NoError(t, err)
	assert.True(t, added)

	require.NoError(t, m.Steps(-2))
	for _, column := range []string{"version", "birth_date"} {
		ok, err := ColumnExists(ctx, db, "customers", column)
		require.NoError(t, err)
		assert.False(t, ok, column)
	}

	require.NoError(t, m.Down())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
}
