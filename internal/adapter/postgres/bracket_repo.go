package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"newsroom/internal/domain"
)

// GetBracket returns the singleton bracket row, or nil if it is missing.
func (d *DB) GetBracket(ctx context.Context) (*domain.Bracket, error) {
	var (
		b    domain.Bracket
		data string
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT title, data, is_visible, updated_at FROM bracket WHERE id = 1",
	).Scan(&b.Title, &data, &b.IsVisible, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Data = json.RawMessage(data)
	return &b, nil
}

// SaveBracket replaces the singleton bracket in a single statement.
func (d *DB) SaveBracket(ctx context.Context, b domain.Bracket) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO bracket (id, title, data, is_visible, updated_at) VALUES (1, $1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, data = EXCLUDED.data, is_visible = EXCLUDED.is_visible, updated_at = EXCLUDED.updated_at`,
		b.Title, string(b.Data), b.IsVisible, b.UpdatedAt.UTC(),
	)
	return err
}
