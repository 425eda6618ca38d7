// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"newsroom/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu          sync.Mutex
	stories     []domain.Story
	submissions []domain.Submission
	sessions    map[string]*domain.Session
	bracket     *domain.Bracket

	storyIDCounter      int64
	submissionIDCounter int64
}

// New creates a new in-memory database seeded with the default bracket.
func New() *DB {
	b := domain.DefaultBracket()
	b.UpdatedAt = time.Now().UTC()
	return &DB{
		sessions: make(map[string]*domain.Session),
		bracket:  &b,
	}
}

// Ensure interfaces are met.
var _ domain.StoryRepository = (*DB)(nil)
var _ domain.SubmissionRepository = (*DB)(nil)
var _ domain.BracketRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- StoryRepository ---

// CreateStory adds an unfeatured story.
func (db *DB) CreateStory(ctx context.Context, s domain.Story) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.storyIDCounter++
	s.ID = db.storyIDCounter
	s.Featured = 0
	s.Timestamp = time.Now().UTC()
	db.stories = append(db.stories, s)
	return s.ID, nil
}

func (db *DB) storyIndex(id int64) int {
	for i := range db.stories {
		if db.stories[i].ID == id {
			return i
		}
	}
	return -1
}

// GetStory returns a copy of the story with the given id, or nil.
func (db *DB) GetStory(ctx context.Context, id int64) (*domain.Story, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.storyIndex(id)
	if i < 0 {
		return nil, nil
	}
	s := db.stories[i]
	return &s, nil
}

func (db *DB) listStories(match func(domain.Story) bool) []domain.Story {
	out := make([]domain.Story, 0)
	for _, s := range db.stories {
		if match(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// ListStories returns matching stories newest first.
func (db *DB) ListStories(ctx context.Context, f domain.StoryFilter) ([]domain.Story, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.listStories(func(s domain.Story) bool {
		return (f.Category == "" || s.Category == f.Category) &&
			(f.Author == "" || s.Author == f.Author)
	}), nil
}

// ListFeaturedStories returns featured stories newest first.
func (db *DB) ListFeaturedStories(ctx context.Context) ([]domain.Story, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.listStories(func(s domain.Story) bool { return s.Featured == 1 }), nil
}

// UpdateStory rewrites the editable fields of a story.
func (db *DB) UpdateStory(ctx context.Context, s domain.Story) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.storyIndex(s.ID)
	if i < 0 {
		return false, nil
	}
	cur := &db.stories[i]
	cur.Title = s.Title
	cur.Dek = s.Dek
	cur.Author = s.Author
	cur.Category = s.Category
	cur.Content = s.Content
	return true, nil
}

// ToggleFeatured flips the featured flag.
func (db *DB) ToggleFeatured(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.storyIndex(id)
	if i < 0 {
		return false, nil
	}
	db.stories[i].Featured = 1 - db.stories[i].Featured
	return true, nil
}

// DeleteStory removes a story.
func (db *DB) DeleteStory(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := db.storyIndex(id)
	if i < 0 {
		return false, nil
	}
	db.stories = append(db.stories[:i], db.stories[i+1:]...)
	return true, nil
}

// ListAuthors returns distinct non-empty authors in ascending order.
func (db *DB) ListAuthors(ctx context.Context) ([]string, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, s := range db.stories {
		if s.Author == "" || seen[s.Author] {
			continue
		}
		seen[s.Author] = true
		out = append(out, s.Author)
	}
	sort.Strings(out)
	return out, nil
}

// --- SubmissionRepository ---

// CreateSubmission stores a reader idea.
func (db *DB) CreateSubmission(ctx context.Context, s domain.Submission) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.submissionIDCounter++
	s.ID = db.submissionIDCounter
	s.Timestamp = time.Now().UTC()
	db.submissions = append(db.submissions, s)
	return s.ID, nil
}

// ListSubmissions returns all submissions newest first.
func (db *DB) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Submission, len(db.submissions))
	copy(out, db.submissions)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// DeleteSubmission removes a submission.
func (db *DB) DeleteSubmission(ctx context.Context, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, s := range db.submissions {
		if s.ID == id {
			db.submissions = append(db.submissions[:i], db.submissions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- BracketRepository ---

// GetBracket returns a copy of the stored bracket.
func (db *DB) GetBracket(ctx context.Context) (*domain.Bracket, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.bracket == nil {
		return nil, nil
	}
	b := *db.bracket
	b.Data = append([]byte(nil), db.bracket.Data...)
	return &b, nil
}

// SaveBracket replaces the stored bracket.
func (db *DB) SaveBracket(ctx context.Context, b domain.Bracket) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	b.Data = append([]byte(nil), b.Data...)
	db.bracket = &b
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[token]; ok {
		return errors.New("session token already exists")
	}
	r.db.sessions[token] = &domain.Session{Token: token, ExpiresAt: expiresAt}
	return nil
}

// GetActive retrieves a session that expires after now.
func (r *SessionRepo) GetActive(ctx context.Context, token string, now time.Time) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok || !s.ExpiresAt.After(now) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

// Touch updates the expiry of an existing session.
func (r *SessionRepo) Touch(ctx context.Context, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		s.ExpiresAt = expiresAt
	}
	return nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all sessions with an expiry at or before now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k, v := range r.db.sessions {
		if !v.ExpiresAt.After(now) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}

// Len reports the number of stored sessions, expired or not.
func (r *SessionRepo) Len() int {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.sessions)
}

// ExpiresAt reports the stored expiry of a session.
func (r *SessionRepo) ExpiresAt(token string) (time.Time, bool) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sessions[token]
	if !ok {
		return time.Time{}, false
	}
	return s.ExpiresAt, true
}
