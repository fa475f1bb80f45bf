package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrUsernameExists = errors.New("username already exists")
)

// Store persists admin users, saved views and the export log in SQLite
// (driver "sqlite") or PostgreSQL (driver "pgx"). Timestamps are stored as
// Unix seconds so both dialects compare them the same way.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and creates missing tables.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var schema []string
	switch driver {
	case "sqlite":
		schema = sqliteSchema
	case "pgx":
		schema = postgresSchema
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == "sqlite" {
		// One connection keeps ":memory:" databases shared and serializes writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db, driver: driver}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind rewrites ? placeholders as $1, $2... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"username" TEXT NOT NULL UNIQUE,
		"password_hash" TEXT NOT NULL,
		"created_at" INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS views (
		"id" TEXT PRIMARY KEY,
		"name" TEXT NOT NULL,
		"spec" TEXT NOT NULL,
		"created_by" TEXT NOT NULL,
		"created_at" INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exports (
		"id" INTEGER PRIMARY KEY AUTOINCREMENT,
		"view_id" TEXT,
		"row_count" INTEGER NOT NULL,
		"client_ip" TEXT NOT NULL,
		"created_at" INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS exports_created_at ON exports(created_at)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS views (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		spec TEXT NOT NULL,
		created_by TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS exports (
		id BIGSERIAL PRIMARY KEY,
		view_id TEXT,
		row_count INTEGER NOT NULL,
		client_ip TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS exports_created_at ON exports(created_at)`,
}
