package app_test

import (
	"context"
	"errors"
	"testing"

	"newsroom/internal/app"
	"newsroom/internal/domain"
)

type mockSubmissionRepo struct {
	createFn func(ctx context.Context, s domain.Submission) (int64, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

func (m *mockSubmissionRepo) CreateSubmission(ctx context.Context, s domain.Submission) (int64, error) {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return 1, nil
}

func (m *mockSubmissionRepo) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	return nil, nil
}

func (m *mockSubmissionRepo) DeleteSubmission(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return true, nil
}

func TestSubmissionService_Submit(t *testing.T) {
	var got domain.Submission
	svc := app.NewSubmissionService(&mockSubmissionRepo{
		createFn: func(ctx context.Context, s domain.Submission) (int64, error) {
			got = s
			return 3, nil
		},
	})

	id, err := svc.Submit(context.Background(), " Ann ", "ann@example.com", " cover the council vote ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 3 {
		t.Errorf("expected id 3, got %d", id)
	}
	if got.Name != "Ann" || got.Idea != "cover the council vote" {
		t.Errorf("unexpected submission: %+v", got)
	}
}

func TestSubmissionService_SubmitRequiresIdea(t *testing.T) {
	svc := app.NewSubmissionService(&mockSubmissionRepo{})
	if _, err := svc.Submit(context.Background(), "Ann", "", "  "); !errors.Is(err, app.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty idea, got %v", err)
	}
}

func TestSubmissionService_DeleteMissing(t *testing.T) {
	svc := app.NewSubmissionService(&mockSubmissionRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	})
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, app.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
