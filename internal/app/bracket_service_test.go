package app_test

import (
	"context"
	"errors"
	"testing"

	"newsroom/internal/app"
	"newsroom/internal/domain"
)

type mockBracketRepo struct {
	getFn  func(ctx context.Context) (*domain.Bracket, error)
	saveFn func(ctx context.Context, b domain.Bracket) error
}

func (m *mockBracketRepo) GetBracket(ctx context.Context) (*domain.Bracket, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, nil
}

func (m *mockBracketRepo) SaveBracket(ctx context.Context, b domain.Bracket) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, b)
	}
	return nil
}

func TestBracketService_GetMissingRowSynthesizesDefault(t *testing.T) {
	svc := app.NewBracketService(&mockBracketRepo{})
	b, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.IsVisible != 0 || b.Title != "" || string(b.Data) != domain.DefaultBracketData {
		t.Errorf("unexpected default bracket: %+v", b)
	}
}

func TestBracketService_SaveReplacesWholeRecord(t *testing.T) {
	var saved *domain.Bracket
	svc := app.NewBracketService(&mockBracketRepo{
		saveFn: func(ctx context.Context, b domain.Bracket) error {
			saved = &b
			return nil
		},
	})

	body := `{"title":"Cup","is_visible":1,"data":{"rounds":[{"name":"R1","matches":[]}]}}`
	u, err := svc.Save(context.Background(), []byte(body))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(u.Parsed.Rounds) != 1 || u.Parsed.Rounds[0].Name != "R1" {
		t.Errorf("unexpected parsed rounds: %+v", u.Parsed.Rounds)
	}
	if saved == nil {
		t.Fatal("expected bracket to be saved")
	}
	if saved.Title != "Cup" || saved.IsVisible != 1 {
		t.Errorf("unexpected saved bracket: %+v", saved)
	}
	if string(saved.Data) != `{"rounds":[{"name":"R1","matches":[]}]}` {
		t.Errorf("unexpected data %s", saved.Data)
	}
	if saved.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestBracketService_SaveInvalidDoesNotWrite(t *testing.T) {
	svc := app.NewBracketService(&mockBracketRepo{
		saveFn: func(ctx context.Context, b domain.Bracket) error {
			t.Error("invalid bracket must not be written")
			return nil
		},
	})

	_, err := svc.Save(context.Background(), []byte(`{"title":"T","is_visible":1,"data":{"rounds":"not-an-array"}}`))
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBracketService_SaveStoreError(t *testing.T) {
	boom := errors.New("db down")
	svc := app.NewBracketService(&mockBracketRepo{
		saveFn: func(ctx context.Context, b domain.Bracket) error { return boom },
	})

	_, err := svc.Save(context.Background(), []byte(`{"title":"T","is_visible":0,"data":{"rounds":[]}}`))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		t.Error("store error must not look like a validation error")
	}
}
