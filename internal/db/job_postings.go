package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// scanner is satisfied by pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

const jobPostingColumns = `id, user_id, url, source_text, content_hash, posting, extraction, created_at`

// SaveJobPosting inserts a job posting and fills its ID and creation time
func (db *DB) SaveJobPosting(ctx context.Context, j *JobPosting) error {
	posting, err := marshalJSON(j.Posting)
	if err != nil {
		return fmt.Errorf("failed to marshal posting: %w", err)
	}
	extraction, err := marshalJSON(j.Extraction)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction: %w", err)
	}

	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (id, user_id, title, company, url, source_text, content_hash, posting, extraction)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		j.ID, j.UserID, j.Posting.Title, j.Posting.Company, j.URL, j.SourceText, j.ContentHash, posting, extraction,
	).Scan(&j.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save job posting: %w", err)
	}
	return nil
}

// ListJobPostings returns a user's job postings, newest first
func (db *DB) ListJobPostings(ctx context.Context, userID uuid.UUID) ([]JobPosting, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	jobs := []JobPosting{}
	for rows.Next() {
		j, err := scanJobPosting(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// GetJobPosting retrieves one of a user's job postings
func (db *DB) GetJobPosting(ctx context.Context, userID, id uuid.UUID) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	j, err := scanJobPosting(row)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

func scanJobPosting(row scanner) (*JobPosting, error) {
	var j JobPosting
	var posting, extraction []byte
	if err := row.Scan(&j.ID, &j.UserID, &j.URL, &j.SourceText, &j.ContentHash, &posting, &extraction, &j.CreatedAt); err != nil {
		if isNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan job posting: %w", err)
	}
	if err := unmarshalJSON(posting, &j.Posting); err != nil {
		return nil, fmt.Errorf("failed to decode posting: %w", err)
	}
	if extraction != nil {
		if err := unmarshalJSON(extraction, &j.Extraction); err != nil {
			return nil, fmt.Errorf("failed to decode extraction: %w", err)
		}
	}
	return &j, nil
}
