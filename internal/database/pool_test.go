package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/database"
	"github.com/iliyamo/meal-planner/internal/database/dbtest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errInduced = errors.New("induced failure")

func TestWithConnReleasesOnEveryPath(t *testing.T) {
	p := dbtest.NewSeededPool(t)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch i % 4 {
			case 0:
				rows, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) ([]database.Row, error) {
					return c.Query(ctx, "SELECT id FROM users WHERE id > ?", 0)
				})
				assert.NoError(t, err)
				assert.Len(t, rows, 5)
			case 1:
				_, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (int, error) {
					return 0, errInduced
				})
				assert.ErrorIs(t, err, errInduced)
			case 2:
				_, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (int64, error) {
					return c.Count(ctx, "SELECT COUNT(*) FROM no_such_table")
				})
				assert.Error(t, err)
			case 3:
				func() {
					defer func() { assert.NotNil(t, recover()) }()
					_, _ = database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (int, error) {
						panic("boom")
					})
				}()
			}
		}(i)
	}
	wg.Wait()

	assert.Zero(t, p.InUse())
	assert.Zero(t, p.Stats().InUse)
}

func TestWithConnCancelledContext(t *testing.T) {
	p := dbtest.NewPool(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (int, error) {
		t.Fatal("unit of work must not run without a connection")
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, p.InUse())
}

func TestExecExistsCount(t *testing.T) {
	p := dbtest.NewPool(t)
	ctx := context.Background()

	_, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (struct{}, error) {
		_, err := c.Exec(ctx, "CREATE TABLE t (id INTEGER PRIMARY KEY, label VARCHAR(10))")
		require.NoError(t, err)

		n, err := c.Exec(ctx, "INSERT INTO t VALUES (?, ?), (?, ?)", 1, "a", 2, []byte("b"))
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		ok, err := c.Exists(ctx, "SELECT id FROM t WHERE label = ?", "a")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Exists(ctx, "SELECT id FROM t WHERE label = ?", "zz")
		require.NoError(t, err)
		assert.False(t, ok)

		cnt, err := c.Count(ctx, "SELECT COUNT(*) FROM t")
		require.NoError(t, err)
		assert.EqualValues(t, 2, cnt)

		rows, err := c.Query(ctx, "SELECT id, label FROM t WHERE id > ? ORDER BY id", 100)
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)

		rows, err = c.Query(ctx, "SELECT id, label FROM t ORDER BY id")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, database.Row{int64(1), "a"}, rows[0])
		assert.Equal(t, "b", rows[1][1])
		return struct{}{}, nil
	})
	require.NoError(t, err)
}

func TestRunScriptSkipsFailingStatements(t *testing.T) {
	p := dbtest.NewPool(t)
	ctx := context.Background()

	rep, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (database.ScriptReport, error) {
		return c.RunScript(ctx, []string{
			"DROP TABLE missing_table",
			"CREATE TABLE s (id INTEGER PRIMARY KEY)",
			"INSERT INTO s VALUES (1)",
			"INSERT INTO s VALUES (1)",
			"INSERT INTO s VALUES (2)",
		})
	})
	require.NoError(t, err)
	assert.Equal(t, database.ScriptReport{Executed: 3, Skipped: 2}, rep)

	n, err := database.WithConn(ctx, p, func(ctx context.Context, c *database.Conn) (int64, error) {
		return c.Count(ctx, "SELECT COUNT(*) FROM s")
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestDegradedPool(t *testing.T) {
	p := database.NewPool(config.DBConfig{Driver: "postgres"})
	err := p.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrPoolUnavailable)
	assert.True(t, p.Degraded())

	_, err = database.WithConn(context.Background(), p, func(ctx context.Context, c *database.Conn) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, database.ErrPoolUnavailable)
	assert.NoError(t, p.Shutdown(time.Second))
}

func TestShutdownIsIdempotent(t *testing.T) {
	p := database.NewPool(dbtest.Config(t, 2))
	require.NoError(t, p.Initialize(context.Background()))
	assert.False(t, p.Degraded())

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = p.Shutdown(time.Second)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}

	_, err := database.WithConn(context.Background(), p, func(ctx context.Context, c *database.Conn) (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, database.ErrPoolClosed)
}

func TestShutdownTimesOutWithConnectionsOut(t *testing.T) {
	p := database.NewPool(dbtest.Config(t, 2))
	require.NoError(t, p.Initialize(context.Background()))

	held := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = database.WithConn(context.Background(), p, func(ctx context.Context, c *database.Conn) (int, error) {
			close(held)
			time.Sleep(300 * time.Millisecond)
			return 0, nil
		})
	}()
	<-held

	err := p.Shutdown(50 * time.Millisecond)
	assert.ErrorIs(t, err, database.ErrShutdownTimeout)
	assert.ErrorIs(t, p.Shutdown(time.Second), database.ErrShutdownTimeout, "later calls return the first result")
	<-done
	assert.Zero(t, p.InUse())
}
