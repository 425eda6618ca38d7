package app

import (
	"context"
	"fmt"
	"strings"

	"newsroom/internal/domain"
)

// SubmissionService handles reader story ideas.
type SubmissionService struct {
	repo domain.SubmissionRepository
}

// NewSubmissionService creates a SubmissionService backed by the given repository.
func NewSubmissionService(repo domain.SubmissionRepository) *SubmissionService {
	return &SubmissionService{repo: repo}
}

// Submit stores a new idea. Name and email are optional.
func (s *SubmissionService) Submit(ctx context.Context, name, email, idea string) (int64, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return 0, fmt.Errorf("%w: idea is required", ErrInvalidInput)
	}
	return s.repo.CreateSubmission(ctx, domain.Submission{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Idea:  idea,
	})
}

// List returns all submissions newest first.
func (s *SubmissionService) List(ctx context.Context) ([]domain.Submission, error) {
	return s.repo.ListSubmissions(ctx)
}

// Delete removes a submission.
func (s *SubmissionService) Delete(ctx context.Context, id int64) error {
	return found(s.repo.DeleteSubmission(ctx, id))
}
