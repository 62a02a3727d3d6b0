package types

import "github.com/google/uuid"

// ParseJobRequest submits a job posting either as a link or as pasted text.
type ParseJobRequest struct {
	URL  string `json:"url" validate:"required_without=Text,omitempty,url"`
	Text string `json:"text" validate:"required_without=URL,omitempty,min=20"`
}

// ExtractProfileRequest submits résumé text for profile extraction.
type ExtractProfileRequest struct {
	Text string `json:"text" validate:"required"`
}

// AnalyzeCompatibilityRequest compares résumé text against job fields.
type AnalyzeCompatibilityRequest struct {
	ResumeText     string   `json:"resume_text" validate:"required"`
	JobDescription string   `json:"job_description"`
	Requirements   []string `json:"requirements"`
	Skills         []string `json:"skills"`
}

// GenerateOptimizedRequest renders an optimized résumé from prior results.
type GenerateOptimizedRequest struct {
	ResumeText string                   `json:"resume_text"`
	Profile    *ResumeProfile           `json:"profile"`
	Job        JobPosting               `json:"job" validate:"required"`
	Assessment *CompatibilityAssessment `json:"assessment"`
}

// OptimizeRequest runs the whole flow for one job and one résumé.
type OptimizeRequest struct {
	JobURL     string `json:"job_url" validate:"required_without=JobText,omitempty,url"`
	JobText    string `json:"job_text" validate:"required_without=JobURL"`
	ResumeText string `json:"resume_text" validate:"required"`
}

// CreateResumeRequest stores résumé text that was converted client-side.
type CreateResumeRequest struct {
	FileName string `json:"file_name" validate:"required,max=255"`
	Text     string `json:"text" validate:"required"`
}

// CreateAnalysisRequest scores a stored résumé against a stored job.
type CreateAnalysisRequest struct {
	ResumeID uuid.UUID `json:"resume_id" validate:"required"`
	JobID    uuid.UUID `json:"job_id" validate:"required"`
}

// CreateOptimizedResumeRequest renders an optimized résumé for a stored analysis.
type CreateOptimizedResumeRequest struct {
	AnalysisID uuid.UUID `json:"analysis_id" validate:"required"`
}

// Validate validates the ParseJobRequest.
func (r *ParseJobRequest) Validate() error {
	return validate.Struct(r)
}
