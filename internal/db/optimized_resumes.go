package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const optimizedResumeColumns = `id, user_id, analysis_id, job_id, content, improvements, created_at`

// SaveOptimizedResume inserts a generated résumé and fills its ID and creation time
func (db *DB) SaveOptimizedResume(ctx context.Context, o *OptimizedResume) error {
	improvements := o.Improvements
	if improvements == nil {
		improvements = []string{}
	}
	data, err := marshalJSON(improvements)
	if err != nil {
		return fmt.Errorf("failed to marshal improvements: %w", err)
	}

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO optimized_resumes (id, user_id, analysis_id, job_id, content, improvements)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		o.ID, o.UserID, o.AnalysisID, o.JobID, o.Content, data,
	).Scan(&o.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save optimized resume: %w", err)
	}
	return nil
}

// ListOptimizedResumes returns a user's generated résumés, newest first
func (db *DB) ListOptimizedResumes(ctx context.Context, userID uuid.UUID) ([]OptimizedResume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+optimizedResumeColumns+` FROM optimized_resumes WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list optimized resumes: %w", err)
	}
	defer rows.Close()

	out := []OptimizedResume{}
	for rows.Next() {
		o, err := scanOptimizedResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// GetOptimizedResume retrieves one of a user's generated résumés
func (db *DB) GetOptimizedResume(ctx context.Context, userID, id uuid.UUID) (*OptimizedResume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+optimizedResumeColumns+` FROM optimized_resumes WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	o, err := scanOptimizedResume(row)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func scanOptimizedResume(row scanner) (*OptimizedResume, error) {
	var o OptimizedResume
	var improvements []byte
	if err := row.Scan(&o.ID, &o.UserID, &o.AnalysisID, &o.JobID, &o.Content, &improvements, &o.CreatedAt); err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan optimized resume: %w", err)
	}
	if err := unmarshalJSON(improvements, &o.Improvements); err != nil {
		return nil, fmt.Errorf("failed to decode improvements: %w", err)
	}
	return &o, nil
}
