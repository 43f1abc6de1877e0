package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	go_ora "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"

	"github.com/iliyamo/meal-planner/internal/config"
)

// Open connects using the configured driver, applies the pool bounds and
// verifies the connection with a ping.
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, Dialect, error) {
	d, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, "", err
	}
	dsn, err := dataSourceName(d, cfg)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", d, err)
	}

	// Pool settings
	db.SetMaxOpenConns(cfg.PoolMax)
	db.SetMaxIdleConns(cfg.PoolMin)
	if cfg.IdleTimeout > 0 {
		db.SetConnMaxIdleTime(cfg.IdleTimeout)
	}

	// Ping with timeout
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", d, err)
	}
	return db, d, nil
}

func dataSourceName(d Dialect, cfg config.DBConfig) (string, error) {
	switch d {
	case Oracle:
		return go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.Name, cfg.User, cfg.Password, nil), nil
	case MySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		// parseTime=true -> DATE -> time.Time | loc=UTC keeps dates consistent
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mc.FormatDSN(), nil
	case SQLite:
		if dir := filepath.Dir(cfg.FilePath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		return "file:" + cfg.FilePath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDialect, d)
}
