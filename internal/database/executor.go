package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/iliyamo/meal-planner/internal/logging"
)

// WithConn borrows exactly one connection from p, runs fn on it and gives
// the connection back exactly once, on success, on error and on panic.
// Acquisition and unit-of-work errors are logged with the request logger
// and returned unchanged to the caller.
func WithConn[T any](ctx context.Context, p *Pool, fn func(context.Context, *Conn) (T, error)) (T, error) {
	var zero T
	log := logging.Ctx(ctx)

	conn, err := p.acquire(ctx)
	if err != nil {
		log.Error().Err(err).Msg("acquire connection failed")
		return zero, err
	}
	defer func() {
		if rerr := conn.release(); rerr != nil {
			log.Error().Err(rerr).Msg("release connection failed")
		}
	}()

	res, err := fn(ctx, conn)
	if err != nil {
		log.Error().Err(err).Msg("database operation failed")
		return zero, err
	}
	return res, nil
}

// Conn is a borrowed connection. Queries are written with '?' placeholders
// and rebound for the pool's dialect.
type Conn struct {
	raw     *sql.Conn
	dialect Dialect
	pool    *Pool
	once    sync.Once
}

// Dialect returns the SQL flavour of the connection.
func (c *Conn) Dialect() Dialect { return c.dialect }

func (c *Conn) release() error {
	var err error
	c.once.Do(func() {
		err = c.raw.Close()
		c.pool.inUse.Add(-1)
	})
	return err
}

// Ping checks the connection is still alive.
func (c *Conn) Ping(ctx context.Context) error {
	return c.raw.PingContext(ctx)
}

// Query runs a SELECT and returns every row as a positional slice.
func (c *Conn) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := c.raw.QueryContext(ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

// Exec runs a statement and returns the number of affected rows.
func (c *Conn) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := c.raw.ExecContext(ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Exists reports whether query returns at least one row.
func (c *Conn) Exists(ctx context.Context, query string, args ...any) (bool, error) {
	rows, err := c.raw.QueryContext(ctx, c.dialect.Rebind(query), args...)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	found := rows.Next()
	return found, rows.Err()
}

// Count scans a single integer, typically from SELECT COUNT(*).
func (c *Conn) Count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := c.raw.QueryRowContext(ctx, c.dialect.Rebind(query), args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
