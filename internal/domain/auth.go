// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Session represents an authenticated admin session.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SessionRepository defines the port for session persistence operations.
//
// Implementations must keep Token unique across live sessions. GetActive only
// returns sessions whose ExpiresAt is strictly after now.
type SessionRepository interface {
	Create(ctx context.Context, token string, expiresAt time.Time) error
	GetActive(ctx context.Context, token string, now time.Time) (*Session, error)
	Touch(ctx context.Context, token string, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
