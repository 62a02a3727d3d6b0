// Package strategy selects how job, profile and compatibility data are
// produced: by the Gemini API, by the deterministic local extractors, or by
// the remote path with a local fallback.
package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Default per-call budgets for the primary strategy.
const (
	DefaultTimeout         = 15 * time.Second
	DefaultOptimizeTimeout = 20 * time.Second
)

// Strategy produces structured data from job and résumé text.
type Strategy interface {
	Name() string
	ExtractJobFromText(ctx context.Context, text string) (types.JobPosting, error)
	ExtractJobFromPage(ctx context.Context, page Page) (*types.JobExtraction, error)
	// ExtractProfile returns nil without error when the text carries a placeholder marker.
	ExtractProfile(ctx context.Context, resumeText string) (*types.ResumeProfile, error)
	AssessCompatibility(ctx context.Context, resumeText string, job ranking.JobInput) (types.CompatibilityAssessment, error)
	OptimizeResume(ctx context.Context, in OptimizeInput) (*types.OptimizedResume, error)
}

// Page is sanitized job page text with its capture metadata.
type Page struct {
	Text   string
	Source types.Source
}

// OptimizeInput is everything needed to rewrite a résumé for a job.
type OptimizeInput struct {
	ResumeText string
	Profile    *types.ResumeProfile
	Job        types.JobPosting
	Assessment types.CompatibilityAssessment
}

// Scoring holds the tunable weights shared by every strategy.
type Scoring struct {
	Confidence    parsing.ConfidenceWeights `json:"confidence"`
	Compatibility ranking.Weights           `json:"compatibility"`
}

// DefaultScoring returns the default confidence and compatibility weights.
func DefaultScoring() Scoring {
	return Scoring{
		Confidence:    parsing.DefaultConfidenceWeights(),
		Compatibility: ranking.DefaultWeights(),
	}
}

// Config configures New.
type Config struct {
	APIKey          string
	LocalOnly       bool
	Timeout         time.Duration
	OptimizeTimeout time.Duration
	Scoring         Scoring
	LLM             *llm.Config
	Logger          *slog.Logger
}

// New builds the remote-with-local-fallback policy. Without an API key, with
// LocalOnly set, or when the LLM client cannot be created, only the local
// strategy is used.
func New(ctx context.Context, cfg Config) *Fallback {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Logger()
	}

	f := &Fallback{
		Secondary:       NewLocal(cfg.Scoring),
		Timeout:         cfg.Timeout,
		OptimizeTimeout: cfg.OptimizeTimeout,
		Logger:          logger,
	}

	switch {
	case cfg.LocalOnly:
		logger.Info("local strategy forced")
		return f
	case cfg.APIKey == "":
		logger.Info("no API key configured, using local strategy")
		return f
	}

	client, err := llm.NewClient(ctx, cfg.LLM, cfg.APIKey)
	if err != nil {
		logger.Warn("LLM client unavailable, using local strategy", "error", err)
		return f
	}
	f.Primary = NewRemote(client, cfg.Scoring)
	return f
}
