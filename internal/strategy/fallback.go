package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/resume-optimizer/internal/logging"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Fallback runs Primary under a time budget and falls back to Secondary when
// Primary is absent, fails or runs out of time. Secondary must not be nil.
type Fallback struct {
	Primary         Strategy
	Secondary       Strategy
	Timeout         time.Duration
	OptimizeTimeout time.Duration
	Logger          *slog.Logger
}

// Name implements Strategy.
func (f *Fallback) Name() string {
	if f.Primary == nil {
		return f.Secondary.Name()
	}
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

// RemoteEnabled reports whether a primary strategy is configured.
func (f *Fallback) RemoteEnabled() bool {
	return f.Primary != nil
}

// Close releases the primary strategy's resources, if it holds any.
func (f *Fallback) Close() error {
	if c, ok := f.Primary.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// ExtractJobFromText implements Strategy.
func (f *Fallback) ExtractJobFromText(ctx context.Context, text string) (types.JobPosting, error) {
	return run(ctx, f, "extract job", f.timeout(),
		func(ctx context.Context, s Strategy) (types.JobPosting, error) {
			return s.ExtractJobFromText(ctx, text)
		})
}

// ExtractJobFromPage implements Strategy.
func (f *Fallback) ExtractJobFromPage(ctx context.Context, page Page) (*types.JobExtraction, error) {
	return run(ctx, f, "extract job page", f.timeout(),
		func(ctx context.Context, s Strategy) (*types.JobExtraction, error) {
			return s.ExtractJobFromPage(ctx, page)
		})
}

// ExtractProfile implements Strategy.
func (f *Fallback) ExtractProfile(ctx context.Context, resumeText string) (*types.ResumeProfile, error) {
	return run(ctx, f, "extract profile", f.timeout(),
		func(ctx context.Context, s Strategy) (*types.ResumeProfile, error) {
			return s.ExtractProfile(ctx, resumeText)
		})
}

// AssessCompatibility implements Strategy.
func (f *Fallback) AssessCompatibility(ctx context.Context, resumeText string, job ranking.JobInput) (types.CompatibilityAssessment, error) {
	return run(ctx, f, "assess compatibility", f.timeout(),
		func(ctx context.Context, s Strategy) (types.CompatibilityAssessment, error) {
			return s.AssessCompatibility(ctx, resumeText, job)
		})
}

// OptimizeResume implements Strategy.
func (f *Fallback) OptimizeResume(ctx context.Context, in OptimizeInput) (*types.OptimizedResume, error) {
	budget := f.OptimizeTimeout
	if budget <= 0 {
		budget = DefaultOptimizeTimeout
	}
	return run(ctx, f, "optimize resume", budget,
		func(ctx context.Context, s Strategy) (*types.OptimizedResume, error) {
			return s.OptimizeResume(ctx, in)
		})
}

func (f *Fallback) timeout() time.Duration {
	if f.Timeout <= 0 {
		return DefaultTimeout
	}
	return f.Timeout
}

func (f *Fallback) logger() *slog.Logger {
	if f.Logger == nil {
		return logging.Logger()
	}
	return f.Logger
}

// run calls call with the primary strategy under budget, then with the
// secondary on failure. Cancellation of the parent context is returned as is.
func run[T any](ctx context.Context, f *Fallback, op string, budget time.Duration, call func(context.Context, Strategy) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if f.Primary == nil {
		return call(ctx, f.Secondary)
	}

	start := time.Now()
	primaryCtx, cancel := context.WithTimeout(ctx, budget)
	result, err := call(primaryCtx, f.Primary)
	cancel()
	if err == nil {
		f.logger().Debug("primary strategy succeeded",
			"op", op,
			"strategy", f.Primary.Name(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return result, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}

	f.logger().Warn("primary strategy failed, falling back",
		"op", op,
		"strategy", f.Primary.Name(),
		"fallback", f.Secondary.Name(),
		"error", err,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return call(ctx, f.Secondary)
}
