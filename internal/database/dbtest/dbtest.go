// Package dbtest opens throwaway SQLite pools for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/database"
)

// Config returns a SQLite pool config backed by a file in t.TempDir().
func Config(t testing.TB, poolMax int) config.DBConfig {
	t.Helper()
	return config.DBConfig{
		Driver:      "sqlite",
		FilePath:    filepath.Join(t.TempDir(), "mealplanner.db"),
		PoolMin:     1,
		PoolMax:     poolMax,
		IdleTimeout: time.Minute,
		PingTimeout: 5 * time.Second,
	}
}

// NewPool returns an initialized, empty pool closed at test cleanup.
func NewPool(t testing.TB) *database.Pool {
	t.Helper()
	p := database.NewPool(Config(t, 4))
	require.NoError(t, p.Initialize(context.Background()))
	t.Cleanup(func() { _ = p.Shutdown(time.Second) })
	return p
}

// NewSeededPool returns a pool whose database holds the full schema and
// seed data.
func NewSeededPool(t testing.TB) *database.Pool {
	t.Helper()
	p := NewPool(t)
	script, err := database.SetupScript(database.SQLite)
	require.NoError(t, err)

	rep, err := database.WithConn(context.Background(), p, func(ctx context.Context, c *database.Conn) (database.ScriptReport, error) {
		return c.RunScript(ctx, database.SplitStatements(script))
	})
	require.NoError(t, err)
	require.Zero(t, rep.Skipped, "seed script statements failed")
	return p
}
