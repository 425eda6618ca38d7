// Package redis implements the session repository on top of Redis.
//
// Each session is a string key "session:<token>" holding the RFC 3339 expiry,
// with a Redis expiry set to the same instant so idle sessions evict
// themselves.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newsroom/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Open parses a redis:// URL, configures the pool and pings the server.
func Open(ctx context.Context, url string) (*goredis.Client, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = 20
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SessionRepo stores sessions in Redis.
type SessionRepo struct {
	client goredis.UniversalClient
}

// NewSessionRepo wraps a Redis client as a SessionRepository.
func NewSessionRepo(client goredis.UniversalClient) *SessionRepo {
	return &SessionRepo{client: client}
}

func key(token string) string { return keyPrefix + token }

// Create stores a new session. An existing token is an error.
func (r *SessionRepo) Create(ctx context.Context, token string, expiresAt time.Time) error {
	err := r.client.SetArgs(ctx, key(token), expiresAt.UTC().Format(time.RFC3339Nano), goredis.SetArgs{
		Mode:     "NX",
		ExpireAt: expiresAt,
	}).Err()
	if errors.Is(err, goredis.Nil) {
		return errors.New("session token already exists")
	}
	return err
}

// GetActive returns the session if it exists and expires after now.
func (r *SessionRepo) GetActive(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	v, err := r.client.Get(ctx, key(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return nil, fmt.Errorf("bad session expiry %q: %w", v, err)
	}
	if !expiresAt.After(now) {
		return nil, nil
	}
	return &domain.Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Touch moves the expiry of an existing session. Missing sessions stay missing.
func (r *SessionRepo) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	err := r.client.SetArgs(ctx, key(token), expiresAt.UTC().Format(time.RFC3339Nano), goredis.SetArgs{
		Mode:     "XX",
		ExpireAt: expiresAt,
	}).Err()
	if errors.Is(err, goredis.Nil) {
		return nil
	}
	return err
}

// Delete removes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, key(token)).Err()
}

// DeleteExpired is a no-op: Redis evicts keys when their expiry passes, and
// GetActive rejects any key that outlives its stored expiry.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	return nil
}
