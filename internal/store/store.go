// Package store is the SQLite persistence layer: privacy-conscious visitor
// records for the admin dashboard and a cache of blog posts fetched from the
// content store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

// timeLayout is how timestamps are stored. It is lexically ordered and
// understood by SQLite's date functions.
const timeLayout = "2006-01-02 15:04:05"

type DB struct {
	Pool *sql.DB
	now  func() time.Time
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite wants a single writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool, now: time.Now}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT NOT NULL DEFAULT '',
		path TEXT NOT NULL DEFAULT '',
		timestamp TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT '',
		lat REAL,
		lng REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`,
	`CREATE INDEX IF NOT EXISTS idx_visitors_path ON visitors(path)`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		markdown TEXT NOT NULL DEFAULT '',
		html TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '[]',
		cover_image TEXT NOT NULL DEFAULT '',
		published_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		reading_minutes INTEGER NOT NULL DEFAULT 1,
		fetched_at TEXT NOT NULL
	)`,
}

// Migrate creates the schema. It is safe to run on every start.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := d.Pool.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
