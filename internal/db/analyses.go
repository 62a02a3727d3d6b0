package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const analysisColumns = `id, user_id, resume_id, job_id, assessment, created_at`

// SaveAnalysis inserts an analysis and fills its ID and creation time
func (db *DB) SaveAnalysis(ctx context.Context, a *Analysis) error {
	assessment, err := marshalJSON(a.Assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (id, user_id, resume_id, job_id, score, assessment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		a.ID, a.UserID, a.ResumeID, a.JobID, a.Assessment.Score, assessment,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// ListAnalyses returns a user's analyses, newest first
func (db *DB) ListAnalyses(ctx context.Context, userID uuid.UUID) ([]Analysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

// GetAnalysis retrieves one of a user's analyses
func (db *DB) GetAnalysis(ctx context.Context, userID, id uuid.UUID) (*Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM analyses WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	a, err := scanAnalysis(row)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func scanAnalysis(row scanner) (*Analysis, error) {
	var a Analysis
	var assessment []byte
	if err := row.Scan(&a.ID, &a.UserID, &a.ResumeID, &a.JobID, &assessment, &a.CreatedAt); err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}
	if err := unmarshalJSON(assessment, &a.Assessment); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	return &a, nil
}
