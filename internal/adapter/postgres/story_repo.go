package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"newsroom/internal/domain"
)

const storyColumns = "id, title, dek, author, category, content, date, featured, timestamp"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (domain.Story, error) {
	var s domain.Story
	err := row.Scan(&s.ID, &s.Title, &s.Dek, &s.Author, &s.Category, &s.Content, &s.Date, &s.Featured, &s.Timestamp)
	return s, err
}

func collectStories(rows *sql.Rows) ([]domain.Story, error) {
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Story, 0)
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateStory inserts an unfeatured story and returns its id.
func (d *DB) CreateStory(ctx context.Context, s domain.Story) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO stories (title, dek, author, category, content, date, featured) VALUES ($1, $2, $3, $4, $5, $6, 0) RETURNING id;",
		s.Title, s.Dek, s.Author, s.Category, s.Content, s.Date,
	).Scan(&id)
	return id, err
}

// GetStory returns a story by id, or nil if it does not exist.
func (d *DB) GetStory(ctx context.Context, id int64) (*domain.Story, error) {
	s, err := scanStory(d.sql.QueryRowContext(ctx,
		"SELECT "+storyColumns+" FROM stories WHERE id = $1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStories returns stories newest first, optionally filtered.
func (d *DB) ListStories(ctx context.Context, f domain.StoryFilter) ([]domain.Story, error) {
	var (
		where []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Author != "" {
		args = append(args, f.Author)
		where = append(where, fmt.Sprintf("author = $%d", len(args)))
	}

	q := "SELECT " + storyColumns + " FROM stories"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC;"

	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

// ListFeaturedStories returns featured stories newest first.
func (d *DB) ListFeaturedStories(ctx context.Context) ([]domain.Story, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+storyColumns+" FROM stories WHERE featured = 1 ORDER BY id DESC;")
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

// UpdateStory rewrites the editable fields of a story.
func (d *DB) UpdateStory(ctx context.Context, s domain.Story) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"UPDATE stories SET title = $1, dek = $2, author = $3, category = $4, content = $5 WHERE id = $6;",
		s.Title, s.Dek, s.Author, s.Category, s.Content, s.ID,
	)
	return affected(res, err)
}

// ToggleFeatured flips the featured flag in place.
func (d *DB) ToggleFeatured(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "UPDATE stories SET featured = 1 - featured WHERE id = $1;", id)
	return affected(res, err)
}

// DeleteStory removes a story by id.
func (d *DB) DeleteStory(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM stories WHERE id = $1;", id)
	return affected(res, err)
}

// ListAuthors returns distinct non-empty authors in ascending order.
func (d *DB) ListAuthors(ctx context.Context) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT DISTINCT author FROM stories WHERE author <> '' ORDER BY author ASC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]string, 0)
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func affected(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
