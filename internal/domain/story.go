package domain

import (
	"context"
	"time"
)

// Story is a published article.
type Story struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Dek       string    `json:"dek"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Date      string    `json:"date"`
	Featured  int       `json:"featured"`
	Timestamp time.Time `json:"timestamp"`
}

// StoryFilter narrows a story listing. Empty fields match everything.
type StoryFilter struct {
	Category string
	Author   string
}

// StoryRepository is the port for story persistence.
//
// Update, ToggleFeatured and Delete report whether a row with the id existed.
type StoryRepository interface {
	CreateStory(ctx context.Context, s Story) (int64, error)
	GetStory(ctx context.Context, id int64) (*Story, error)
	ListStories(ctx context.Context, f StoryFilter) ([]Story, error)
	ListFeaturedStories(ctx context.Context) ([]Story, error)
	UpdateStory(ctx context.Context, s Story) (bool, error)
	ToggleFeatured(ctx context.Context, id int64) (bool, error)
	DeleteStory(ctx context.Context, id int64) (bool, error)
	ListAuthors(ctx context.Context) ([]string, error)
}

// Submission is a reader-submitted story idea.
type Submission struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Idea      string    `json:"idea"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmissionRepository is the port for submission persistence.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, s Submission) (int64, error)
	ListSubmissions(ctx context.Context) ([]Submission, error)
	DeleteSubmission(ctx context.Context, id int64) (bool, error)
}
