package server

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// DBClient is the user storage used by UserService.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// Store is the persistence used by the authenticated routes. Getters return
// nil without error when the row does not exist or belongs to another user.
type Store interface {
	DBClient

	Ping(ctx context.Context) error

	SaveJobPosting(ctx context.Context, j *db.JobPosting) error
	ListJobPostings(ctx context.Context, userID uuid.UUID) ([]db.JobPosting, error)
	GetJobPosting(ctx context.Context, userID, id uuid.UUID) (*db.JobPosting, error)

	SaveResume(ctx context.Context, r *db.Resume) error
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	GetResume(ctx context.Context, userID, id uuid.UUID) (*db.Resume, error)

	SaveAnalysis(ctx context.Context, a *db.Analysis) error
	ListAnalyses(ctx context.Context, userID uuid.UUID) ([]db.Analysis, error)
	GetAnalysis(ctx context.Context, userID, id uuid.UUID) (*db.Analysis, error)

	SaveOptimizedResume(ctx context.Context, o *db.OptimizedResume) error
	ListOptimizedResumes(ctx context.Context, userID uuid.UUID) ([]db.OptimizedResume, error)
	GetOptimizedResume(ctx context.Context, userID, id uuid.UUID) (*db.OptimizedResume, error)

	SaveUserProfile(ctx context.Context, userID uuid.UUID, profile *types.ResumeProfile) (*db.UserProfile, error)
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*db.UserProfile, error)
}

var _ Store = (*db.DB)(nil)
