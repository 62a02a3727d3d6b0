// Package rendering renders optimized résumé documents from extracted data.
package rendering

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jonathan/resume-optimizer/internal/types"
)

//go:embed resume.txt.tmpl
var resumeTemplate string

var tmpl = template.Must(template.New("resume").Parse(resumeTemplate))

// DefaultCandidateName is used when the profile has no name.
const DefaultCandidateName = "Candidato"

// DefaultSkills are listed when neither the profile nor the assessment name any skill.
var DefaultSkills = []string{
	"Comunicação eficaz",
	"Trabalho em equipe",
	"Resolução de problemas",
	"Adaptabilidade",
	"Organização",
}

const (
	defaultEducation = "Formação adequada para a área de atuação."
	objectiveFormat  = "Profissional experiente buscando oportunidade como %s%s, com foco em aplicar conhecimentos e habilidades para contribuir com os objetivos da empresa e crescer profissionalmente na área."
	experienceFormat = "Experiência relevante na área de %s, com conhecimento das principais práticas e ferramentas do mercado."
)

// TemplateData is the data passed to the résumé template.
type TemplateData struct {
	Name             string
	Email            string
	Phone            string
	Address          string
	Objective        string
	Strengths        []string
	Experience       string
	Education        string
	Skills           []string
	DevelopmentAreas []string
}

// RenderOptimizedResume renders a plain-text résumé tuned to job. Every section
// falls back to generic text, so a nil profile still yields a complete document.
func RenderOptimizedResume(profile *types.ResumeProfile, job types.JobPosting, assessment types.CompatibilityAssessment) (string, error) {
	var out strings.Builder
	if err := tmpl.Execute(&out, BuildTemplateData(profile, job, assessment)); err != nil {
		return "", &TemplateError{Message: "failed to execute résumé template", Cause: err}
	}
	return out.String(), nil
}

// Optimize renders the document and pairs it with the assessment's improvements.
func Optimize(profile *types.ResumeProfile, job types.JobPosting, assessment types.CompatibilityAssessment) (*types.OptimizedResume, error) {
	content, err := RenderOptimizedResume(profile, job, assessment)
	if err != nil {
		return nil, err
	}
	return &types.OptimizedResume{
		Content:      content,
		Improvements: append([]string{}, assessment.Improvements...),
	}, nil
}

// BuildTemplateData resolves every section of the document.
func BuildTemplateData(profile *types.ResumeProfile, job types.JobPosting, assessment types.CompatibilityAssessment) TemplateData {
	if profile == nil {
		profile = &types.ResumeProfile{}
	}

	title := strings.TrimSpace(job.Title)
	if title == "" {
		title = types.PlaceholderJobTitle
	}
	company := ""
	if c := strings.TrimSpace(job.Company); c != "" && c != types.PlaceholderCompany {
		company = " na " + c
	}

	return TemplateData{
		Name:             valueOr(profile.FullName, DefaultCandidateName),
		Email:            valueOr(profile.Email, ""),
		Phone:            valueOr(profile.Phone, ""),
		Address:          valueOr(profile.Address, ""),
		Objective:        fmt.Sprintf(objectiveFormat, title, company),
		Strengths:        nonBlank(assessment.Strengths),
		Experience:       valueOr(profile.Experience, fmt.Sprintf(experienceFormat, strings.ToLower(title))),
		Education:        valueOr(profile.Education, defaultEducation),
		Skills:           mergeSkills(profile.Skills, assessment.MatchedSkills),
		DevelopmentAreas: nonBlank(assessment.Improvements),
	}
}

// mergeSkills returns the profile skills followed by matched job skills not
// already listed, compared case-insensitively, or DefaultSkills when both are empty.
func mergeSkills(profileSkills, matched []string) []string {
	seen := make(map[string]bool)
	var skills []string
	for _, s := range append(append([]string{}, profileSkills...), matched...) {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	if len(skills) == 0 {
		return DefaultSkills
	}
	return skills
}

func valueOr(s *string, fallback string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return fallback
	}
	return strings.TrimSpace(*s)
}

func nonBlank(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
