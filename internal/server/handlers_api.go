package server

import (
	"net/http"

	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/profile"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/strategy"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// ParseJobResponse is returned by POST /api/parse-job. Extraction is set for links only.
type ParseJobResponse struct {
	Job        types.JobPosting     `json:"job"`
	Extraction *types.JobExtraction `json:"extraction,omitempty"`
}

// ExtractProfileResponse is returned by POST /api/extract-profile. Profile is
// null when the text is a placeholder for an unparsed document.
type ExtractProfileResponse struct {
	Profile    *types.ResumeProfile `json:"profile"`
	Incomplete bool                 `json:"incomplete"`
}

// OptimizeResponse is returned by POST /api/optimize.
type OptimizeResponse struct {
	Job        types.JobPosting              `json:"job"`
	Extraction *types.JobExtraction          `json:"extraction,omitempty"`
	Profile    *types.ResumeProfile          `json:"profile"`
	Assessment types.CompatibilityAssessment `json:"assessment"`
	Resume     *types.OptimizedResume        `json:"optimized_resume"`
}

func (s *Server) runOptions(jobText, jobURL, resumeText string) pipeline.RunOptions {
	return pipeline.RunOptions{
		JobText:    jobText,
		JobURL:     jobURL,
		ResumeText: resumeText,
		Ingestion:  s.ingestion,
		Logger:     s.logger,
	}
}

// handleParseJob extracts a job posting from a link or pasted text.
func (s *Server) handleParseJob(w http.ResponseWriter, r *http.Request) {
	var req types.ParseJobRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := pipeline.ParseJob(r.Context(), s.strategy, s.runOptions(req.Text, req.URL, ""))
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, ParseJobResponse{Job: result.Job, Extraction: result.Extraction})
}

// handleExtractProfile extracts a structured profile from résumé text.
func (s *Server) handleExtractProfile(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	p, err := s.strategy.ExtractProfile(r.Context(), req.Text)
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, ExtractProfileResponse{Profile: p, Incomplete: profile.IsIncomplete(p)})
}

// handleAnalyzeCompatibility scores résumé text against job fields.
func (s *Server) handleAnalyzeCompatibility(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeCompatibilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	assessment, err := s.strategy.AssessCompatibility(r.Context(), req.ResumeText, ranking.JobInput{
		Description:  req.JobDescription,
		Requirements: req.Requirements,
		Skills:       req.Skills,
	})
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, assessment)
}

// handleGenerateOptimized renders an optimized résumé from prior results.
// A missing assessment is computed; a missing profile is extracted by the strategy.
func (s *Server) handleGenerateOptimized(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateOptimizedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	var assessment types.CompatibilityAssessment
	if req.Assessment != nil {
		assessment = *req.Assessment
	} else {
		var err error
		assessment, err = s.strategy.AssessCompatibility(ctx, req.ResumeText, ranking.JobInputFrom(req.Job))
		if err != nil {
			errorFrom(w, r, err)
			return
		}
	}

	resume, err := s.strategy.OptimizeResume(ctx, strategy.OptimizeInput{
		ResumeText: req.ResumeText,
		Profile:    req.Profile,
		Job:        req.Job,
		Assessment: assessment,
	})
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, resume)
}

// handleOptimize runs the whole flow for one job and one résumé.
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req types.OptimizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := pipeline.Run(r.Context(), s.strategy, s.runOptions(req.JobText, req.JobURL, req.ResumeText))
	if err != nil {
		errorFrom(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, OptimizeResponse{
		Job:        result.Job,
		Extraction: result.Extraction,
		Profile:    result.Profile,
		Assessment: result.Assessment,
		Resume:     result.Resume,
	})
}
