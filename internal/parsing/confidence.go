package parsing

import (
	"math"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// ConfidenceWeights are the per-tier weights of the job confidence rubric.
type ConfidenceWeights struct {
	Required  float64 `json:"required"`
	Important float64 `json:"important"`
	Optional  float64 `json:"optional"`
}

// DefaultConfidenceWeights returns the standard 2 / 1 / 0.5 rubric.
func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{Required: 2, Important: 1, Optional: 0.5}
}

// ScoreJobConfidence rates how complete a detailed job record is.
// The score is the weighted share of present rubric fields, rounded to two
// decimals and clamped to [0,1]. Placeholder title and company count as absent.
func ScoreJobConfidence(details *types.JobDetails, w ConfidenceWeights) types.ConfidenceReport {
	if details == nil {
		details = &types.JobDetails{}
	}

	rubric := []struct {
		weight  float64
		present bool
	}{
		{w.Required, hasTitle(details)},
		{w.Required, hasCompany(details)},
		{w.Important, details.Seniority != types.SeniorityUnknown},
		{w.Important, hasText(details.Area)},
		{w.Important, len(details.Responsibilities) > 0},
		{w.Important, hasText(details.Requirements.Experience)},
		{w.Optional, len(details.Benefits) > 0},
		{w.Optional, len(details.Requirements.TechnicalSkills) > 0},
	}

	var score, total float64
	for _, item := range rubric {
		total += item.weight
		if item.present {
			score += item.weight
		}
	}

	ratio := 0.0
	if total > 0 {
		ratio = math.Round(score/total*100) / 100
	}

	return types.ConfidenceReport{
		Score:         math.Max(0, math.Min(1, ratio)),
		MissingFields: MissingFields(details),
	}
}

// MissingFields lists the absent fields of the fixed user-facing checklist, in checklist order.
func MissingFields(details *types.JobDetails) []string {
	if details == nil {
		details = &types.JobDetails{}
	}

	checklist := []struct {
		field   string
		present bool
	}{
		{"titulo", hasTitle(details)},
		{"empresa.nome", hasCompany(details)},
		{"senioridade", details.Seniority != types.SeniorityUnknown},
		{"area", hasText(details.Area)},
		{"localizacao", hasText(details.Location)},
		{"tipo_contrato", hasText(details.ContractType)},
		{"salario_faixa", hasText(details.SalaryRange)},
		{"responsabilidades", len(details.Responsibilities) > 0},
		{"requisitos.experiencia", hasText(details.Requirements.Experience)},
		{"beneficios", len(details.Benefits) > 0},
	}

	missing := []string{}
	for _, item := range checklist {
		if !item.present {
			missing = append(missing, item.field)
		}
	}
	return missing
}

func hasTitle(d *types.JobDetails) bool {
	title := strings.TrimSpace(d.Title)
	return title != "" && title != types.PlaceholderJobTitle
}

func hasCompany(d *types.JobDetails) bool {
	name := strings.TrimSpace(d.Company.Name)
	return name != "" && name != types.PlaceholderCompany
}

func hasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
