package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iliyamo/meal-planner/internal/config"
	"github.com/iliyamo/meal-planner/internal/logging"
)

// Pool owns the process's bounded set of database connections. It is built
// once in main, initialized, handed to the repositories and shut down when
// the process receives a termination signal.
//
// A pool whose initialization failed stays usable as a value: it reports
// Degraded and every acquisition fails with ErrPoolUnavailable, so the HTTP
// layer can keep answering (e.g. "unable to connect") instead of crashing.
type Pool struct {
	cfg config.DBConfig

	mu      sync.RWMutex
	db      *sql.DB
	dialect Dialect
	initErr error

	inUse   atomic.Int64
	closing atomic.Bool

	shutdownOnce sync.Once
	shutdownErr  error
}

// NewPool returns an uninitialized pool for cfg.
func NewPool(cfg config.DBConfig) *Pool {
	return &Pool{cfg: cfg, initErr: ErrPoolUnavailable}
}

// NewPoolFromDB wraps an already opened handle. Used by tools and tests that
// manage the *sql.DB themselves.
func NewPoolFromDB(db *sql.DB, d Dialect) *Pool {
	return &Pool{db: db, dialect: d}
}

// Initialize opens the pool. It is safe to call more than once; only the
// first successful call opens connections. A failure is logged and
// returned, and the pool stays degraded.
func (p *Pool) Initialize(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.db != nil {
		return nil
	}

	log := logging.Ctx(ctx).With().Str(logging.FieldDriver, p.cfg.Driver).Logger()
	db, d, err := Open(ctx, p.cfg)
	if err != nil {
		p.initErr = fmt.Errorf("%w: %w", ErrPoolUnavailable, err)
		log.Error().Err(err).Msg("connection pool initialization failed")
		return p.initErr
	}
	p.db, p.dialect, p.initErr = db, d, nil
	log.Info().
		Int("pool_min", p.cfg.PoolMin).
		Int("pool_max", p.cfg.PoolMax).
		Dur("idle_timeout", p.cfg.IdleTimeout).
		Msg("connection pool started")
	return nil
}

// Degraded reports whether the pool has no usable database handle.
func (p *Pool) Degraded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.db == nil
}

// Dialect returns the SQL flavour of the open pool.
func (p *Pool) Dialect() Dialect {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dialect
}

// InUse is the number of connections currently checked out through WithConn.
func (p *Pool) InUse() int64 { return p.inUse.Load() }

// Stats exposes database/sql pool statistics; zero when degraded.
func (p *Pool) Stats() sql.DBStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.db == nil {
		return sql.DBStats{}
	}
	return p.db.Stats()
}

func (p *Pool) acquire(ctx context.Context) (*Conn, error) {
	if p.closing.Load() {
		return nil, ErrPoolClosed
	}
	p.mu.RLock()
	db, d, initErr := p.db, p.dialect, p.initErr
	p.mu.RUnlock()
	if db == nil {
		if initErr == nil {
			initErr = ErrPoolUnavailable
		}
		return nil, initErr
	}

	raw, err := db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	p.inUse.Add(1)
	return &Conn{raw: raw, dialect: d, pool: p}, nil
}

// Shutdown stops new acquisitions, waits up to grace for checked-out
// connections to come back and closes the pool. Only the first call does
// the work; later calls return the same result, so SIGINT and SIGTERM can
// both trigger it.
func (p *Pool) Shutdown(grace time.Duration) error {
	p.shutdownOnce.Do(func() {
		p.shutdownErr = p.shutdown(grace)
	})
	return p.shutdownErr
}

func (p *Pool) shutdown(grace time.Duration) error {
	p.closing.Store(true)
	p.mu.RLock()
	db := p.db
	p.mu.RUnlock()
	if db == nil {
		return nil
	}

	deadline := time.Now().Add(grace)
	ticker := time.NewTicker(25 * time.Millisecond)
	defer ticker.Stop()
	for p.inUse.Load() > 0 && time.Now().Before(deadline) {
		<-ticker.C
	}
	remaining := p.inUse.Load()

	if err := db.Close(); err != nil {
		return fmt.Errorf("close pool: %w", err)
	}
	if remaining > 0 {
		return fmt.Errorf("%w: %d connections still in use", ErrShutdownTimeout, remaining)
	}
	logging.L().Info().Msg("pool closed")
	return nil
}
