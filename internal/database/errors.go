package database

import "errors"

// ErrPoolUnavailable is returned by every acquisition while the pool is
// degraded, i.e. Initialize failed or was never called.
var ErrPoolUnavailable = errors.New("database pool unavailable")

// ErrPoolClosed is returned once Shutdown has started.
var ErrPoolClosed = errors.New("database pool closed")

// ErrShutdownTimeout means connections were still checked out when the
// grace period ran out; the pool was closed anyway.
var ErrShutdownTimeout = errors.New("database pool shutdown timed out")

// ErrInvalidDialect is returned for an unknown DB_DRIVER value.
var ErrInvalidDialect = errors.New("unsupported database driver")
