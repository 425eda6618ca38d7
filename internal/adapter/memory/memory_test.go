package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"newsroom/internal/domain"
)

func TestStoryRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	id1, err := db.CreateStory(ctx, domain.Story{Title: "First", Author: "Sarah", Category: "news"})
	if err != nil {
		t.Fatalf("CreateStory: %v", err)
	}
	id2, _ := db.CreateStory(ctx, domain.Story{Title: "Second", Author: "Jimmy", Category: "sports"})
	_, _ = db.CreateStory(ctx, domain.Story{Title: "Third", Author: "Sarah", Category: "sports"})
	if id1 == 0 || id2 <= id1 {
		t.Errorf("expected increasing ids, got %d, %d", id1, id2)
	}

	// Newest first
	all, err := db.ListStories(ctx, domain.StoryFilter{})
	if err != nil {
		t.Fatalf("ListStories: %v", err)
	}
	if len(all) != 3 || all[0].Title != "Third" {
		t.Errorf("expected 3 stories newest first, got %+v", all)
	}

	both, _ := db.ListStories(ctx, domain.StoryFilter{Category: "sports", Author: "Sarah"})
	if len(both) != 1 || both[0].Title != "Third" {
		t.Errorf("expected combined filter to match Third, got %+v", both)
	}

	// Toggle featured on and off
	if ok, _ := db.ToggleFeatured(ctx, id2); !ok {
		t.Fatal("expected toggle to find story")
	}
	featured, _ := db.ListFeaturedStories(ctx)
	if len(featured) != 1 || featured[0].ID != id2 || featured[0].Featured != 1 {
		t.Errorf("expected story %d featured, got %+v", id2, featured)
	}
	_, _ = db.ToggleFeatured(ctx, id2)
	featured, _ = db.ListFeaturedStories(ctx)
	if len(featured) != 0 {
		t.Errorf("expected no featured stories, got %+v", featured)
	}

	// Update keeps date and featured flag
	ok, err := db.UpdateStory(ctx, domain.Story{ID: id1, Title: "First v2", Author: "Sarah"})
	if err != nil || !ok {
		t.Fatalf("UpdateStory: %v, %v", ok, err)
	}
	s, _ := db.GetStory(ctx, id1)
	if s == nil || s.Title != "First v2" {
		t.Errorf("expected updated title, got %+v", s)
	}

	authors, _ := db.ListAuthors(ctx)
	if len(authors) != 2 || authors[0] != "Jimmy" || authors[1] != "Sarah" {
		t.Errorf("expected [Jimmy Sarah], got %v", authors)
	}

	// Delete, then it is gone
	if ok, _ := db.DeleteStory(ctx, id1); !ok {
		t.Error("expected delete to find story")
	}
	if s, _ := db.GetStory(ctx, id1); s != nil {
		t.Error("expected story to be deleted")
	}
	if ok, _ := db.DeleteStory(ctx, id1); ok {
		t.Error("expected second delete to report missing")
	}
}

func TestSubmissionRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	id, err := db.CreateSubmission(ctx, domain.Submission{Name: "Ann", Idea: "idea"})
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}
	_, _ = db.CreateSubmission(ctx, domain.Submission{Name: "Bob", Idea: "other"})

	subs, _ := db.ListSubmissions(ctx)
	if len(subs) != 2 || subs[0].Name != "Bob" {
		t.Errorf("expected newest first, got %+v", subs)
	}

	if ok, _ := db.DeleteSubmission(ctx, id); !ok {
		t.Error("expected delete to succeed")
	}
	subs, _ = db.ListSubmissions(ctx)
	if len(subs) != 1 {
		t.Errorf("expected 1 submission, got %d", len(subs))
	}
}

func TestBracketRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	b, err := db.GetBracket(ctx)
	if err != nil || b == nil {
		t.Fatalf("GetBracket: %v, %v", b, err)
	}
	if string(b.Data) != domain.DefaultBracketData || b.IsVisible != 0 {
		t.Errorf("expected default bracket, got %+v", b)
	}

	next := domain.Bracket{Title: "Cup", Data: json.RawMessage(`{"rounds":[{"name":"R1","matches":[]}]}`), IsVisible: 1}
	if err := db.SaveBracket(ctx, next); err != nil {
		t.Fatalf("SaveBracket: %v", err)
	}
	got, _ := db.GetBracket(ctx)
	if got.Title != "Cup" || got.IsVisible != 1 || string(got.Data) != string(next.Data) {
		t.Errorf("expected saved bracket, got %+v", got)
	}

	// Returned data must not alias stored data.
	got.Data[0] = 'X'
	again, _ := db.GetBracket(ctx)
	if string(again.Data) != string(next.Data) {
		t.Error("stored bracket was mutated through a returned copy")
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := repo.Create(ctx, "live", now.Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, "live", now.Add(time.Hour)); err == nil {
		t.Error("expected duplicate token to be rejected")
	}
	_ = repo.Create(ctx, "edge", now)
	_ = repo.Create(ctx, "stale", now.Add(-time.Minute))

	if s, _ := repo.GetActive(ctx, "edge", now); s != nil {
		t.Error("session expiring exactly now must not be active")
	}
	if s, _ := repo.GetActive(ctx, "live", now); s == nil {
		t.Error("expected live session")
	}

	if err := repo.DeleteExpired(ctx, now); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if repo.Len() != 1 {
		t.Errorf("expected only live session to remain, got %d", repo.Len())
	}

	later := now.Add(2 * time.Hour)
	_ = repo.Touch(ctx, "live", later)
	if exp, _ := repo.ExpiresAt("live"); !exp.Equal(later) {
		t.Errorf("expected expiry %v, got %v", later, exp)
	}

	// Touching an unknown token does not create it.
	_ = repo.Touch(ctx, "ghost", later)
	if _, ok := repo.ExpiresAt("ghost"); ok {
		t.Error("touch must not create sessions")
	}

	_ = repo.Delete(ctx, "live")
	_ = repo.Delete(ctx, "live")
	if repo.Len() != 0 {
		t.Errorf("expected no sessions, got %d", repo.Len())
	}
}
