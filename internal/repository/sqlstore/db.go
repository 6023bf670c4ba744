// Package sqlstore implements the request and conversation logs on
// database/sql for SQLite (modernc, no cgo) and MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/Rrens/shopchat/internal/config"
)

// timeLayout is fixed width so SQLite text timestamps sort chronologically
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB wraps a database/sql handle together with its dialect
type DB struct {
	conn   *sql.DB
	driver string
}

// Open connects to the sqlite or mysql database described by cfg
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var driverName string
	switch cfg.Driver {
	case "sqlite":
		driverName = "sqlite"
		if cfg.URL == "" {
			if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return nil, fmt.Errorf("failed to create database directory: %w", err)
				}
			}
		}
	case "mysql":
		driverName = "mysql"
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", cfg.Driver)
	}

	conn, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	} else if cfg.MaxConns > 0 {
		conn.SetMaxOpenConns(int(cfg.MaxConns))
		conn.SetMaxIdleConns(int(cfg.MinConns))
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, driver: cfg.Driver}, nil
}

// Close closes the database handle
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies database connectivity
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// timeArg converts t to the representation stored by the dialect
func (db *DB) timeArg(t time.Time) any {
	t = t.UTC()
	if db.driver == "sqlite" {
		return t.Format(timeLayout)
	}
	return t
}

// orderNewest is the ORDER BY clause listing rows newest first
func (db *DB) orderNewest() string {
	if db.driver == "sqlite" {
		return "created_at DESC, rowid DESC"
	}
	return "created_at DESC"
}

// timestamp scans TEXT and DATETIME columns alike
type timestamp struct {
	time.Time
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		ts.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02 15:04:05.999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp: %q", s)
}

func nullString(s *string) driver.Value {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
