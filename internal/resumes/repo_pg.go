package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-studio/resume/model"
)

// PGRepo implements Repo using Postgres. The document payload is
// stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, title, template, font, document, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	doc, err := json.Marshal(res.Document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.Title,
		res.Template,
		res.Font,
		doc,
		res.CreatedAt,
		res.UpdatedAt,
	)
	return err
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Resume, error) {
	const query = `
SELECT id, user_id, title, template, font, document, created_at, updated_at
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`

	var res Resume
	var doc []byte
	err := r.DB.QueryRowContext(ctx, query, userID, id).Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&res.Template,
		&res.Font,
		&doc,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if err := json.Unmarshal(doc, &res.Document); err != nil {
		return Resume{}, fmt.Errorf("unmarshal document: %w", err)
	}
	return res, nil
}

// Update rewrites an existing resume owned by the user.
func (r *PGRepo) Update(ctx context.Context, res Resume) error {
	const query = `
UPDATE resumes
SET title = $1, template = $2, font = $3, document = $4, updated_at = $5
WHERE user_id = $6 AND id = $7`

	doc, err := json.Marshal(res.Document)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	result, err := r.DB.ExecContext(
		ctx,
		query,
		res.Title,
		res.Template,
		res.Font,
		doc,
		res.UpdatedAt,
		res.UserID,
		res.ID,
	)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByUser lists resumes ordered by most recently updated.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, title, template, font, document, created_at, updated_at
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		var res Resume
		var doc []byte
		if err := rows.Scan(
			&res.ID,
			&res.UserID,
			&res.Title,
			&res.Template,
			&res.Font,
			&doc,
			&res.CreatedAt,
			&res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		var parsed model.Document
		if err := json.Unmarshal(doc, &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		res.Document = parsed
		out = append(out, res)
	}
	return out, rows.Err()
}

// Delete removes a resume owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM resumes WHERE user_id = $1 AND id = $2`
	result, err := r.DB.ExecContext(ctx, query, userID, id)
	if err != nil {
		return err
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
