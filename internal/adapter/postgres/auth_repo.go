// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"newsroom/internal/domain"
)

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, expires_at) VALUES ($1, $2)",
		token, expiresAt.UTC(),
	)
	return err
}

// GetActive retrieves a session by token if it expires after now.
func (r *SessionRepo) GetActive(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, expires_at FROM sessions WHERE token = $1 AND expires_at > $2",
		token, now.UTC(),
	).Scan(&s.Token, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Touch sets a new expiry on the session. Concurrent touches are last-write-wins.
func (r *SessionRepo) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"UPDATE sessions SET expires_at = $1 WHERE token = $2",
		expiresAt.UTC(), token,
	)
	return err
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all sessions with expires_at <= now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= $1", now.UTC())
	return err
}
