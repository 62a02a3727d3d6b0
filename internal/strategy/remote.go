package strategy

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/profile"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/schemas"
	"github.com/jonathan/resume-optimizer/internal/types"
	schemafiles "github.com/jonathan/resume-optimizer/schemas"
)

// MaxPromptPageLength bounds, in characters, the page text sent to the model.
const MaxPromptPageLength = 4000

// Remote asks the LLM for every result and validates each reply against the
// embedded JSON Schemas before decoding it.
type Remote struct {
	client  llm.Client
	scoring Scoring
}

// NewRemote creates a Remote strategy backed by client.
func NewRemote(client llm.Client, scoring Scoring) *Remote {
	return &Remote{client: client, scoring: scoring}
}

// Name implements Strategy.
func (r *Remote) Name() string { return "remote" }

// Close releases the LLM client.
func (r *Remote) Close() error {
	return r.client.Close()
}

type postingReply struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Skills       []string `json:"skills"`
	Seniority    *string  `json:"seniority"`
	WorkModel    *string  `json:"work_model"`
}

// ExtractJobFromText implements Strategy.
func (r *Remote) ExtractJobFromText(ctx context.Context, text string) (types.JobPosting, error) {
	const op = "extract job"

	prompt, err := prompts.Render(prompts.JobFile, prompts.KeyExtractJobText, map[string]string{
		"JobText": text,
	})
	if err != nil {
		return types.JobPosting{}, err
	}

	var reply postingReply
	if err := r.generateJSON(ctx, op, prompt, llm.TierStandard, schemafiles.JobPosting, &reply); err != nil {
		return types.JobPosting{}, err
	}

	posting := types.JobPosting{
		Title:        strings.TrimSpace(reply.Title),
		Company:      strings.TrimSpace(reply.Company),
		Requirements: nonBlank(reply.Requirements),
		Skills:       nonBlank(reply.Skills),
		Seniority:    parsing.ClassifySeniority(deref(reply.Seniority)),
		WorkModel:    parsing.ClassifyWorkModel(deref(reply.WorkModel)),
	}
	if posting.Title == "" {
		posting.Title = types.PlaceholderJobTitle
	}
	if posting.Company == "" {
		posting.Company = types.PlaceholderCompany
	}
	posting.Description = parsing.DefaultSummary(reply.Description)
	if posting.Description == "" {
		posting.Description = parsing.ExtractJobFromText(text).Description
	}
	return posting, nil
}

type pageReply struct {
	Job      types.JobDetails         `json:"vaga"`
	Summary  string                   `json:"resumo_curto"`
	Metadata types.ExtractionMetadata `json:"metadados"`
}

// ExtractJobFromPage implements Strategy. The capture metadata always comes
// from page.Source, never from the model.
func (r *Remote) ExtractJobFromPage(ctx context.Context, page Page) (*types.JobExtraction, error) {
	const op = "extract job page"

	prompt, err := prompts.Render(prompts.JobFile, prompts.KeyExtractJobPage, map[string]string{
		"URL":        page.Source.URL,
		"CapturedAt": page.Source.CapturedAt.UTC().Format(time.RFC3339),
		"PageText":   truncateRunes(page.Text, MaxPromptPageLength),
	})
	if err != nil {
		return nil, err
	}

	var reply pageReply
	if err := r.generateJSON(ctx, op, prompt, llm.TierStandard, schemafiles.JobExtraction, &reply); err != nil {
		return nil, err
	}

	ext := &types.JobExtraction{
		Source:   page.Source,
		Job:      reply.Job,
		Summary:  reply.Summary,
		Metadata: reply.Metadata,
	}
	parsing.CompleteExtraction(ext, r.scoring.Confidence)
	return ext, nil
}

// ExtractProfile implements Strategy.
func (r *Remote) ExtractProfile(ctx context.Context, resumeText string) (*types.ResumeProfile, error) {
	const op = "extract profile"

	if types.HasPlaceholderMarker(resumeText) {
		return nil, nil
	}

	prompt, err := prompts.Render(prompts.ProfileFile, prompts.KeyExtractProfile, map[string]string{
		"ResumeText": resumeText,
	})
	if err != nil {
		return nil, err
	}

	var p types.ResumeProfile
	if err := r.generateJSON(ctx, op, prompt, llm.TierLite, schemafiles.ResumeProfile, &p); err != nil {
		return nil, err
	}
	return profile.Normalize(&p), nil
}

type assessmentReply struct {
	Score         float64  `json:"score"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Improvements  []string `json:"improvements"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// AssessCompatibility implements Strategy. The score is clamped to [0,100]
// and the advice lists are padded like the local scorer's.
func (r *Remote) AssessCompatibility(ctx context.Context, resumeText string, job ranking.JobInput) (types.CompatibilityAssessment, error) {
	const op = "assess compatibility"

	prompt, err := prompts.Render(prompts.CompatibilityFile, prompts.KeyAnalyze, map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": job.Description,
		"Requirements":   strings.Join(job.Requirements, "\n"),
		"Skills":         strings.Join(job.Skills, ", "),
	})
	if err != nil {
		return types.CompatibilityAssessment{}, err
	}

	var reply assessmentReply
	if err := r.generateJSON(ctx, op, prompt, llm.TierStandard, schemafiles.Compatibility, &reply); err != nil {
		return types.CompatibilityAssessment{}, err
	}

	matched, missing := nonBlank(reply.MatchedSkills), nonBlank(reply.MissingSkills)
	if matched == nil && missing == nil {
		matched, missing = ranking.MatchSkills(resumeText, job.Skills)
	}

	return types.CompatibilityAssessment{
		Score:         int(math.Round(math.Max(0, math.Min(100, reply.Score)))),
		Strengths:     ranking.PadAdvice(reply.Strengths, ranking.DefaultStrengths, ranking.MinStrengths),
		Weaknesses:    ranking.PadAdvice(reply.Weaknesses, ranking.DefaultWeaknesses, ranking.MinWeaknesses),
		Improvements:  ranking.PadAdvice(reply.Improvements, ranking.DefaultImprovements, ranking.MinImprovements),
		MatchedSkills: orEmpty(matched),
		MissingSkills: orEmpty(missing),
	}, nil
}

// OptimizeResume implements Strategy.
func (r *Remote) OptimizeResume(ctx context.Context, in OptimizeInput) (*types.OptimizedResume, error) {
	const op = "optimize resume"

	profileJSON := "null"
	if in.Profile != nil {
		data, err := json.Marshal(in.Profile)
		if err != nil {
			return nil, err
		}
		profileJSON = string(data)
	}

	prompt, err := prompts.Render(prompts.OptimizeFile, prompts.KeyGenerateResume, map[string]string{
		"ResumeText":   in.ResumeText,
		"JobTitle":     in.Job.Title,
		"JobCompany":   in.Job.Company,
		"Requirements": strings.Join(in.Job.Requirements, "\n"),
		"Skills":       strings.Join(in.Job.Skills, ", "),
		"Strengths":    strings.Join(in.Assessment.Strengths, "\n"),
		"Improvements": strings.Join(in.Assessment.Improvements, "\n"),
		"Profile":      profileJSON,
	})
	if err != nil {
		return nil, err
	}

	content, err := r.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &RemoteError{Op: op, Cause: err}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &DecodeError{Op: op, Message: "empty résumé returned"}
	}

	return &types.OptimizedResume{
		Content:      content,
		Improvements: append([]string{}, in.Assessment.Improvements...),
	}, nil
}

// generateJSON calls the model, validates the reply against schema and
// decodes it into out.
func (r *Remote) generateJSON(ctx context.Context, op, prompt string, tier llm.ModelTier, schema string, out any) error {
	raw, err := r.client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return &RemoteError{Op: op, Cause: err}
	}
	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schema, raw); err != nil {
		return &DecodeError{Op: op, Message: "reply does not match schema", Cause: err}
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return &DecodeError{Op: op, Message: "reply is not valid JSON", Cause: err}
	}
	return nil
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

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
