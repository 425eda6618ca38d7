package app

import (
	"context"
	"fmt"
	"strings"

	"newsroom/internal/domain"

	"github.com/microcosm-cc/bluemonday"
)

// StoryService encapsulates article archive use cases.
type StoryService struct {
	repo   domain.StoryRepository
	policy *bluemonday.Policy
}

// NewStoryService creates a StoryService backed by the given repository.
func NewStoryService(repo domain.StoryRepository) *StoryService {
	return &StoryService{repo: repo, policy: bluemonday.UGCPolicy()}
}

// StoryInput carries the editable fields of a story.
type StoryInput struct {
	Title    string `json:"title"`
	Dek      string `json:"dek"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Date     string `json:"date"`
}

func (s *StoryService) normalize(in StoryInput) (domain.Story, error) {
	st := domain.Story{
		Title:    strings.TrimSpace(in.Title),
		Dek:      strings.TrimSpace(in.Dek),
		Author:   strings.TrimSpace(in.Author),
		Category: strings.TrimSpace(in.Category),
		Content:  s.policy.Sanitize(in.Content),
		Date:     strings.TrimSpace(in.Date),
	}
	if st.Title == "" {
		return domain.Story{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return st, nil
}

// Create publishes a new, unfeatured story.
func (s *StoryService) Create(ctx context.Context, in StoryInput) (int64, error) {
	st, err := s.normalize(in)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateStory(ctx, st)
}

// Get returns a story by id or ErrNotFound.
func (s *StoryService) Get(ctx context.Context, id int64) (*domain.Story, error) {
	st, err := s.repo.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

// List returns stories newest first, filtered by category and author.
func (s *StoryService) List(ctx context.Context, f domain.StoryFilter) ([]domain.Story, error) {
	return s.repo.ListStories(ctx, f)
}

// Featured returns featured stories newest first.
func (s *StoryService) Featured(ctx context.Context) ([]domain.Story, error) {
	return s.repo.ListFeaturedStories(ctx)
}

// Update rewrites title, dek, author, category and content. The date and
// featured flag are left as they are.
func (s *StoryService) Update(ctx context.Context, id int64, in StoryInput) error {
	st, err := s.normalize(in)
	if err != nil {
		return err
	}
	st.ID = id
	return found(s.repo.UpdateStory(ctx, st))
}

// ToggleFeatured flips the featured flag of a story.
func (s *StoryService) ToggleFeatured(ctx context.Context, id int64) error {
	return found(s.repo.ToggleFeatured(ctx, id))
}

// Delete removes a story.
func (s *StoryService) Delete(ctx context.Context, id int64) error {
	return found(s.repo.DeleteStory(ctx, id))
}

// Authors lists distinct non-empty author names in ascending order.
func (s *StoryService) Authors(ctx context.Context) ([]string, error) {
	return s.repo.ListAuthors(ctx)
}

func found(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
