package strategy

import (
	"context"

	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/profile"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/rendering"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// Local runs the deterministic extractors and scorers. It never fails on
// unstructured input.
type Local struct {
	scoring Scoring
}

// NewLocal creates a Local strategy with the given weights.
func NewLocal(scoring Scoring) *Local {
	return &Local{scoring: scoring}
}

// Name implements Strategy.
func (l *Local) Name() string { return "local" }

// ExtractJobFromText implements Strategy.
func (l *Local) ExtractJobFromText(_ context.Context, text string) (types.JobPosting, error) {
	return parsing.ExtractJobFromText(text), nil
}

// ExtractJobFromPage implements Strategy.
func (l *Local) ExtractJobFromPage(_ context.Context, page Page) (*types.JobExtraction, error) {
	posting := parsing.ExtractJobFromHTML(page.Text, page.Source.URL)
	return parsing.BuildExtraction(posting, page.Source, l.scoring.Confidence), nil
}

// ExtractProfile implements Strategy.
func (l *Local) ExtractProfile(_ context.Context, resumeText string) (*types.ResumeProfile, error) {
	return profile.Extract(resumeText), nil
}

// AssessCompatibility implements Strategy.
func (l *Local) AssessCompatibility(_ context.Context, resumeText string, job ranking.JobInput) (types.CompatibilityAssessment, error) {
	return ranking.ScoreCompatibility(resumeText, job, l.scoring.Compatibility), nil
}

// OptimizeResume implements Strategy. A missing profile is extracted from the résumé text.
func (l *Local) OptimizeResume(_ context.Context, in OptimizeInput) (*types.OptimizedResume, error) {
	p := in.Profile
	if p == nil {
		p = profile.Extract(in.ResumeText)
	}
	return rendering.Optimize(p, in.Job, in.Assessment)
}
