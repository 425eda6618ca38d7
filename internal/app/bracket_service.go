package app

import (
	"context"
	"fmt"
	"time"

	"newsroom/internal/domain"
)

// BracketService reads and replaces the singleton tournament bracket.
type BracketService struct {
	repo domain.BracketRepository
	now  func() time.Time
}

// NewBracketService creates a BracketService backed by the given repository.
func NewBracketService(repo domain.BracketRepository) *BracketService {
	return &BracketService{repo: repo, now: time.Now}
}

// Get returns the stored bracket, or the empty invisible default when the
// row is missing.
func (s *BracketService) Get(ctx context.Context) (domain.Bracket, error) {
	b, err := s.repo.GetBracket(ctx)
	if err != nil {
		return domain.Bracket{}, err
	}
	if b == nil {
		return domain.DefaultBracket(), nil
	}
	return *b, nil
}

// Save validates body and, on success, replaces the whole stored bracket.
// The returned update carries the typed rounds that were stored.
// Validation failures are returned as *domain.ValidationError.
func (s *BracketService) Save(ctx context.Context, body []byte) (domain.BracketUpdate, error) {
	u, err := domain.ParseBracketUpdate(body)
	if err != nil {
		return domain.BracketUpdate{}, err
	}
	b := u.Bracket()
	b.UpdatedAt = s.now().UTC()
	if err := s.repo.SaveBracket(ctx, b); err != nil {
		return domain.BracketUpdate{}, fmt.Errorf("save bracket: %w", err)
	}
	return u, nil
}
