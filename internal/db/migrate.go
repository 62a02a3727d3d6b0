package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-optimizer/internal/logging"
)

// Migration is one named schema change. Migrations run in order, each at most
// once, inside its own transaction.
type Migration struct {
	Name string
	Up   func(ctx context.Context, tx pgx.Tx) error
}

func execSQL(query string) func(context.Context, pgx.Tx) error {
	return func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query)
		return err
	}
}

// Migrations is the ordered schema history.
var Migrations = []Migration{
	{
		Name: "create_users",
		Up: execSQL(`
			CREATE TABLE IF NOT EXISTS users (
				id            UUID PRIMARY KEY,
				name          TEXT NOT NULL,
				email         TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`),
	},
	{
		Name: "create_job_postings",
		Up: execSQL(`
			CREATE TABLE IF NOT EXISTS job_postings (
				id           UUID PRIMARY KEY,
				user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title        TEXT NOT NULL,
				company      TEXT NOT NULL,
				url          TEXT NOT NULL DEFAULT '',
				source_text  TEXT NOT NULL DEFAULT '',
				content_hash TEXT NOT NULL DEFAULT '',
				posting      JSONB NOT NULL,
				extraction   JSONB,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_job_postings_user ON job_postings(user_id, created_at DESC)`),
	},
	{
		Name: "create_resumes",
		Up: execSQL(`
			CREATE TABLE IF NOT EXISTS resumes (
				id         UUID PRIMARY KEY,
				user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				file_name  TEXT NOT NULL,
				text       TEXT NOT NULL,
				profile    JSONB,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_resumes_user ON resumes(user_id, created_at DESC)`),
	},
	{
		Name: "create_analyses",
		Up: execSQL(`
			CREATE TABLE IF NOT EXISTS analyses (
				id         UUID PRIMARY KEY,
				user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				resume_id  UUID NOT NULL REFERENCES resumes(id) ON DELETE CASCADE,
				job_id     UUID NOT NULL REFERENCES job_postings(id) ON DELETE CASCADE,
				score      INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
				assessment JSONB NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_analyses_user ON analyses(user_id, created_at DESC)`),
	},
	{
		Name: "create_optimized_resumes",
		Up: execSQL(`
			CREATE TABLE IF NOT EXISTS optimized_resumes (
				id           UUID PRIMARY KEY,
				user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				analysis_id  UUID REFERENCES analyses(id) ON DELETE SET NULL,
				job_id       UUID REFERENCES job_postings(id) ON DELETE SET NULL,
				content      TEXT NOT NULL,
				improvements JSONB NOT NULL DEFAULT '[]'::jsonb,
				created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_optimized_resumes_user ON optimized_resumes(user_id, created_at DESC)`),
	},
	{
		Name: "create_user_profiles",
		Up: execSQL(`
			CREATE TABLE IF NOT EXISTS user_profiles (
				user_id    UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
				profile    JSONB NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`),
	},
}

// Migrate applies every migration not yet recorded in schema_migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return db.migrate(ctx, Migrations, logging.Logger())
}

func (db *DB) migrate(ctx context.Context, migrations []Migration, logger *slog.Logger) error {
	logger.Info("starting database migrations")

	if _, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := db.applyMigration(ctx, m)
		if err != nil {
			logger.Error("migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if applied {
			logger.Info("migration completed", "name", m.Name)
		}
	}

	logger.Info("all migrations completed")
	return nil
}

func (db *DB) applyMigration(ctx context.Context, m Migration) (bool, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`,
		m.Name,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if err := m.Up(ctx, tx); err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}
