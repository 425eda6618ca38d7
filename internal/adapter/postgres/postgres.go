package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newsroom/internal/domain"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
//
// One DB is opened per process and shared by every service. All statements
// are parameterised and each runs on its own; the bracket row has a single
// writer per request.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.StoryRepository = (*DB)(nil)
var _ domain.SubmissionRepository = (*DB)(nil)
var _ domain.BracketRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS stories (id BIGSERIAL PRIMARY KEY, title TEXT NOT NULL DEFAULT '', dek TEXT NOT NULL DEFAULT '', author TEXT NOT NULL DEFAULT '', category TEXT NOT NULL DEFAULT '', content TEXT NOT NULL DEFAULT '', date TEXT NOT NULL DEFAULT '', featured INTEGER NOT NULL DEFAULT 0 CHECK(featured IN (0,1)), timestamp TIMESTAMPTZ NOT NULL DEFAULT now());",
		"CREATE INDEX IF NOT EXISTS idx_stories_category ON stories(category);",
		"CREATE INDEX IF NOT EXISTS idx_stories_author ON stories(author);",
		"CREATE TABLE IF NOT EXISTS submissions (id BIGSERIAL PRIMARY KEY, name TEXT NOT NULL DEFAULT '', email TEXT NOT NULL DEFAULT '', idea TEXT NOT NULL DEFAULT '', timestamp TIMESTAMPTZ NOT NULL DEFAULT now());",
		"CREATE TABLE IF NOT EXISTS sessions (id BIGSERIAL PRIMARY KEY, token TEXT UNIQUE NOT NULL, expires_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		"CREATE TABLE IF NOT EXISTS bracket (id INTEGER PRIMARY KEY CHECK(id = 1), title TEXT NOT NULL DEFAULT '', data TEXT NOT NULL, is_visible INTEGER NOT NULL DEFAULT 0 CHECK(is_visible IN (0,1)), updated_at TIMESTAMPTZ NOT NULL DEFAULT now());",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// The bracket is a singleton; seed it once with the empty default.
	if _, err := d.sql.ExecContext(ctx,
		"INSERT INTO bracket (id, title, data, is_visible, updated_at) VALUES (1, '', $1, 0, now()) ON CONFLICT (id) DO NOTHING;",
		domain.DefaultBracketData,
	); err != nil {
		return fmt.Errorf("migrate: seed bracket: %w", err)
	}
	return nil
}
