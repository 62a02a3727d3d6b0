package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// User is an account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// JobPosting is a stored job posting and, for links, its detailed extraction
type JobPosting struct {
	ID          uuid.UUID            `json:"id"`
	UserID      uuid.UUID            `json:"user_id"`
	URL         string               `json:"url,omitempty"`
	SourceText  string               `json:"source_text,omitempty"`
	ContentHash string               `json:"content_hash,omitempty"`
	Posting     types.JobPosting     `json:"posting"`
	Extraction  *types.JobExtraction `json:"extraction,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Resume is an uploaded résumé with the profile extracted from it
type Resume struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	FileName  string               `json:"file_name"`
	Text      string               `json:"text"`
	Profile   *types.ResumeProfile `json:"profile"`
	CreatedAt time.Time            `json:"created_at"`
}

// Analysis is a compatibility assessment of a résumé against a job
type Analysis struct {
	ID         uuid.UUID                     `json:"id"`
	UserID     uuid.UUID                     `json:"user_id"`
	ResumeID   uuid.UUID                     `json:"resume_id"`
	JobID      uuid.UUID                     `json:"job_id"`
	Assessment types.CompatibilityAssessment `json:"assessment"`
	CreatedAt  time.Time                     `json:"created_at"`
}

// OptimizedResume is a generated résumé document
type OptimizedResume struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	AnalysisID   *uuid.UUID `json:"analysis_id,omitempty"`
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	Content      string     `json:"content"`
	Improvements []string   `json:"improvements"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UserProfile is the profile kept for a user across résumé uploads
type UserProfile struct {
	UserID    uuid.UUID           `json:"user_id"`
	Profile   types.ResumeProfile `json:"profile"`
	UpdatedAt time.Time           `json:"updated_at"`
}
