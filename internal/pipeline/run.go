// Package pipeline orchestrates a full optimization: job ingestion and
// profile extraction, compatibility assessment and résumé generation.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/strategy"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Step names reported in progress events.
const (
	StepIngestJob      = "ingest_job"
	StepParseJob       = "parse_job"
	StepExtractProfile = "extract_profile"
	StepAssess         = "assess_compatibility"
	StepOptimize       = "optimize_resume"
)

var (
	// ErrMissingJob is returned when neither job text nor a job URL is given.
	ErrMissingJob = errors.New("job text or URL is required")
	// ErrMissingResume is returned when the résumé text is blank.
	ErrMissingResume = errors.New("resume text is required")
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. It may be called
// from several goroutines at once.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the inputs of a pipeline run. JobURL wins over JobText.
type RunOptions struct {
	JobText    string
	JobURL     string
	ResumeText string
	Ingestion  ingestion.URLOptions
	OnProgress ProgressCallback
	Logger     *slog.Logger
}

// Result holds every artifact produced by a run.
type Result struct {
	Page       *ingestion.Page               `json:"page"`
	Extraction *types.JobExtraction          `json:"extraction,omitempty"`
	Job        types.JobPosting              `json:"job"`
	Profile    *types.ResumeProfile          `json:"profile"`
	Assessment types.CompatibilityAssessment `json:"assessment"`
	Resume     *types.OptimizedResume        `json:"resume"`
}

// Run executes the pipeline with s. Job ingestion and profile extraction run
// concurrently; assessment and generation follow once both are done.
func Run(ctx context.Context, s strategy.Strategy, opts RunOptions) (*Result, error) {
	if strings.TrimSpace(opts.JobURL) == "" && strings.TrimSpace(opts.JobText) == "" {
		return nil, ErrMissingJob
	}
	if strings.TrimSpace(opts.ResumeText) == "" {
		return nil, ErrMissingResume
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Logger()
	}
	logger = logger.With("strategy", s.Name())
	start := time.Now()

	result := &Result{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return ingestJob(gctx, s, &opts, result)
	})

	g.Go(func() error {
		p, err := s.ExtractProfile(gctx, opts.ResumeText)
		if err != nil {
			return fmt.Errorf("extract profile: %w", err)
		}
		result.Profile = p
		emitProgress(&opts, StepExtractProfile, "Extracted résumé profile", p)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	assessment, err := s.AssessCompatibility(ctx, opts.ResumeText, ranking.JobInputFrom(result.Job))
	if err != nil {
		return nil, fmt.Errorf("assess compatibility: %w", err)
	}
	result.Assessment = assessment
	emitProgress(&opts, StepAssess, fmt.Sprintf("Compatibility score: %d", assessment.Score), assessment)

	resume, err := s.OptimizeResume(ctx, strategy.OptimizeInput{
		ResumeText: opts.ResumeText,
		Profile:    result.Profile,
		Job:        result.Job,
		Assessment: assessment,
	})
	if err != nil {
		return nil, fmt.Errorf("optimize resume: %w", err)
	}
	result.Resume = resume
	emitProgress(&opts, StepOptimize, "Generated optimized résumé", nil)

	logger.Info("pipeline completed",
		"job_title", result.Job.Title,
		"score", assessment.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// ParseJob ingests and extracts the job named by opts.JobURL or opts.JobText
// without touching the résumé. Only Page, Job and Extraction are set.
func ParseJob(ctx context.Context, s strategy.Strategy, opts RunOptions) (*Result, error) {
	if strings.TrimSpace(opts.JobURL) == "" && strings.TrimSpace(opts.JobText) == "" {
		return nil, ErrMissingJob
	}
	result := &Result{}
	if err := ingestJob(ctx, s, &opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ingestJob fills result.Page, result.Job and, for links, result.Extraction.
func ingestJob(ctx context.Context, s strategy.Strategy, opts *RunOptions, result *Result) error {
	if url := strings.TrimSpace(opts.JobURL); url != "" {
		page, err := ingestion.FromURL(ctx, url, opts.Ingestion)
		if err != nil {
			return fmt.Errorf("ingest job: %w", err)
		}
		emitProgress(opts, StepIngestJob, fmt.Sprintf("Fetched job page (%d chars)", len(page.Text)), nil)

		ext, err := s.ExtractJobFromPage(ctx, strategy.Page{Text: page.Text, Source: page.Source})
		if err != nil {
			return fmt.Errorf("parse job: %w", err)
		}
		result.Page, result.Extraction, result.Job = page, ext, ext.Posting()
		emitProgress(opts, StepParseJob, "Extracted job "+result.Job.Title, result.Job)
		return nil
	}

	page := ingestion.FromText(opts.JobText)
	emitProgress(opts, StepIngestJob, fmt.Sprintf("Read job text (%d chars)", len(page.Text)), nil)

	job, err := s.ExtractJobFromText(ctx, page.Text)
	if err != nil {
		return fmt.Errorf("parse job: %w", err)
	}
	result.Page, result.Job = page, job
	emitProgress(opts, StepParseJob, "Extracted job "+job.Title, job)
	return nil
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
