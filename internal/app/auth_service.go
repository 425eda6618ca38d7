// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"newsroom/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is the idle timeout of an admin session.
const SessionTTL = time.Hour

var (
	// ErrInvalidCredentials indicates that the provided password was incorrect.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrNotFound indicates that the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput wraps rejections of client-supplied fields.
	ErrInvalidInput = errors.New("invalid input")
)

// AuthService issues, validates, refreshes and revokes admin session tokens.
type AuthService struct {
	sessions  domain.SessionRepository
	adminHash []byte
	now       func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock overrides the time source used for expiry decisions.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// NewAuthService creates a new authentication service. adminHash is the
// bcrypt hash of the admin password; an empty hash rejects every login.
func NewAuthService(sessions domain.SessionRepository, adminHash string, opts ...AuthOption) *AuthService {
	s := &AuthService{
		sessions:  sessions,
		adminHash: []byte(adminHash),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login verifies the admin password and creates a session.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if password == "" || len(s.adminHash) == 0 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.CreateSession(ctx)
}

// CreateSession stores a fresh token that expires SessionTTL from now.
func (s *AuthService) CreateSession(ctx context.Context) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.Create(ctx, token, s.now().Add(SessionTTL)); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// Authorize reports whether token belongs to a live session.
//
// Side effects: every call with a non-empty token first deletes all expired
// sessions, and a successful check slides the session's expiry to
// now+SessionTTL via Refresh. A false result is never an error; errors
// mean the store could not be consulted.
func (s *AuthService) Authorize(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	now := s.now()
	if err := s.sessions.DeleteExpired(ctx, now); err != nil {
		return false, fmt.Errorf("sweep sessions: %w", err)
	}

	session, err := s.sessions.GetActive(ctx, token, now)
	if err != nil {
		return false, fmt.Errorf("lookup session: %w", err)
	}
	if session == nil {
		return false, nil
	}

	if _, err := s.Refresh(ctx, token); err != nil {
		return false, err
	}
	return true, nil
}

// Refresh unconditionally moves the session's expiry to now+SessionTTL and
// returns the new expiry.
func (s *AuthService) Refresh(ctx context.Context, token string) (time.Time, error) {
	expiresAt := s.now().Add(SessionTTL)
	if err := s.sessions.Touch(ctx, token, expiresAt); err != nil {
		return time.Time{}, fmt.Errorf("refresh session: %w", err)
	}
	return expiresAt, nil
}

// Logout invalidates a session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// HashPassword returns the bcrypt hash stored in ADMIN_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
