package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const resumeColumns = `id, user_id, file_name, text, profile, created_at`

// SaveResume inserts a résumé and fills its ID and creation time
func (db *DB) SaveResume(ctx context.Context, r *Resume) error {
	profile, err := marshalJSON(r.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, user_id, file_name, text, profile)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		r.ID, r.UserID, r.FileName, r.Text, profile,
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// ListResumes returns a user's résumés, newest first
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []Resume{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *r)
	}
	return resumes, rows.Err()
}

// GetResume retrieves one of a user's résumés
func (db *DB) GetResume(ctx context.Context, userID, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	r, err := scanResume(row)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

func scanResume(row scanner) (*Resume, error) {
	var r Resume
	var profile []byte
	if err := row.Scan(&r.ID, &r.UserID, &r.FileName, &r.Text, &profile, &r.CreatedAt); err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan resume: %w", err)
	}
	if profile != nil {
		if err := unmarshalJSON(profile, &r.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
	}
	return &r, nil
}
