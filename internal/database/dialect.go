package database

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect identifies the SQL flavour behind a pool. Queries in this module
// are written with '?' placeholders and rebound per dialect at execution time.
type Dialect string

const (
	Oracle Dialect = "oracle"
	MySQL  Dialect = "mysql"
	SQLite Dialect = "sqlite"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case Oracle, MySQL, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDialect, s)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	// go-ora registers "oracle", modernc registers "sqlite", mysql registers "mysql"
	return string(d)
}

// Rebind rewrites '?' placeholders into the dialect's bind syntax. Oracle
// uses positional :1, :2, ...; MySQL and SQLite accept '?' as is. Quoted
// literals are left untouched.
func (d Dialect) Rebind(query string) string {
	if d != Oracle {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
