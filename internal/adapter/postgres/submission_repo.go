package postgres

import (
	"context"

	"newsroom/internal/domain"
)

// CreateSubmission inserts a reader idea and returns its id.
func (d *DB) CreateSubmission(ctx context.Context, s domain.Submission) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO submissions (name, email, idea) VALUES ($1, $2, $3) RETURNING id;",
		s.Name, s.Email, s.Idea,
	).Scan(&id)
	return id, err
}

// ListSubmissions returns all submissions newest first.
func (d *DB) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, email, idea, timestamp FROM submissions ORDER BY id DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Submission, 0)
	for rows.Next() {
		var s domain.Submission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Idea, &s.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteSubmission removes a submission by id.
func (d *DB) DeleteSubmission(ctx context.Context, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM submissions WHERE id = $1;", id)
	return affected(res, err)
}
