package parsing

import (
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// DefaultLanguage is reported when the extraction language is unknown.
const DefaultLanguage = "pt-BR"

// DefaultSummary joins the non-empty parts with " • " and bounds the result
// to MaxDescriptionLength characters, ending in "..." when cut.
func DefaultSummary(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return truncate(strings.Join(kept, " • "), MaxDescriptionLength, "...")
}

// SummarizeDetails builds the default one-line summary of a detailed job record:
// company, title and location (prefixed by the work model when both are known).
func SummarizeDetails(d *types.JobDetails) string {
	location := ""
	if hasText(d.Location) {
		location = *d.Location
		if d.Company.WorkModel != types.WorkModelUnknown {
			location = string(d.Company.WorkModel) + " " + location
		}
	}
	return DefaultSummary(companyName(d), titleOf(d), location)
}

// DetailsFromPosting lifts a flat JobPosting into the detailed record shape.
func DetailsFromPosting(p types.JobPosting) types.JobDetails {
	details := types.JobDetails{
		Title:     p.Title,
		Seniority: p.Seniority,
		Company: types.CompanyInfo{
			Name:      p.Company,
			WorkModel: p.WorkModel,
		},
		Requirements: types.RequirementSet{
			TechnicalSkills: append([]string(nil), p.Skills...),
		},
	}
	if len(p.Requirements) > 0 {
		experience := strings.Join(p.Requirements, "; ")
		details.Requirements.Experience = &experience
	}
	return details
}

// NewSource describes a page captured from rawURL at the given time.
func NewSource(rawURL string, capturedAt time.Time) types.Source {
	src := types.Source{URL: rawURL, CapturedAt: capturedAt.UTC()}
	if u, err := url.Parse(rawURL); err == nil {
		src.Domain = u.Hostname()
	}
	return src
}

// BuildExtraction wraps a heuristically extracted posting in the detailed
// extraction envelope used for job links.
func BuildExtraction(p types.JobPosting, src types.Source, w ConfidenceWeights) *types.JobExtraction {
	ext := &types.JobExtraction{
		Source:  src,
		Job:     DetailsFromPosting(p),
		Summary: p.Description,
	}
	CompleteExtraction(ext, w)
	return ext
}

// CompleteExtraction fills the gaps of an extraction in place: placeholders for
// title and company, normalized seniority and work model, the default summary,
// and confidence metadata when the producer did not supply it.
func CompleteExtraction(ext *types.JobExtraction, w ConfidenceWeights) {
	d := &ext.Job

	if strings.TrimSpace(d.Title) == "" {
		d.Title = types.PlaceholderJobTitle
	}
	if strings.TrimSpace(d.Company.Name) == "" {
		d.Company.Name = types.PlaceholderCompany
	}
	d.Seniority = ClassifySeniority(string(d.Seniority))
	d.Company.WorkModel = ClassifyWorkModel(string(d.Company.WorkModel))

	ext.Summary = strings.TrimSpace(ext.Summary)
	if ext.Summary == "" {
		ext.Summary = SummarizeDetails(d)
	}
	ext.Summary = truncate(ext.Summary, MaxDescriptionLength, "...")

	if ext.Metadata.Language == "" {
		ext.Metadata.Language = DefaultLanguage
	}

	report := ScoreJobConfidence(d, w)
	if ext.Metadata.Confidence <= 0 || ext.Metadata.Confidence > 1 {
		ext.Metadata.Confidence = report.Score
	}
	if ext.Metadata.MissingFields == nil {
		ext.Metadata.MissingFields = report.MissingFields
	}
}

func companyName(d *types.JobDetails) string {
	if hasCompany(d) {
		return d.Company.Name
	}
	return ""
}

func titleOf(d *types.JobDetails) string {
	if hasTitle(d) {
		return d.Title
	}
	return ""
}
