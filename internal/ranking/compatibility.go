// Package ranking scores how well a résumé matches a job posting.
package ranking

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// Advice list sizes.
const (
	MaxStrengths    = 5
	MaxWeaknesses   = 5
	MaxImprovements = 3

	MinStrengths    = 3
	MinWeaknesses   = 2
	MinImprovements = 4
)

// minKeywordLength is the exclusive lower bound, in characters, for a
// requirement word to count as a keyword.
const minKeywordLength = 3

// GenericKeywords earn a bonus when they appear in both the résumé and the job description.
var GenericKeywords = []string{"experiência", "conhecimento", "habilidade", "projeto", "desenvolvimento"}

// Boilerplate advice used to pad short lists.
var (
	DefaultStrengths = []string{
		"Experiência relevante identificada no currículo",
		"Conhecimento das principais áreas mencionadas na vaga",
		"Perfil alinhado com as expectativas do mercado",
	}
	DefaultWeaknesses = []string{
		"Algumas habilidades específicas podem ser desenvolvidas",
		"Experiência em certas áreas pode ser aprofundada",
	}
	DefaultImprovements = []string{
		"Destacar mais resultados quantificáveis nas experiências",
		"Incluir palavras-chave específicas da vaga",
		"Reorganizar o currículo para destacar pontos mais relevantes",
		"Adicionar projetos ou certificações relacionadas à área",
	}
)

// Weights configures the compatibility blend.
type Weights struct {
	Skill        float64 `json:"skill"`
	Requirement  float64 `json:"requirement"`
	KeywordBonus float64 `json:"keyword_bonus"`
	Baseline     float64 `json:"baseline"`
}

// DefaultWeights returns the 60/40 blend with a +5 keyword bonus and a baseline of 50.
func DefaultWeights() Weights {
	return Weights{Skill: 0.6, Requirement: 0.4, KeywordBonus: 5, Baseline: 50}
}

// JobInput is the part of a job posting the scorer reads.
type JobInput struct {
	Description  string
	Requirements []string
	Skills       []string
}

// JobInputFrom adapts a JobPosting.
func JobInputFrom(p types.JobPosting) JobInput {
	return JobInput{Description: p.Description, Requirements: p.Requirements, Skills: p.Skills}
}

// ScoreCompatibility compares résumé text with a job. All matching is
// case-insensitive substring containment.
//
// With both skills and requirements the base score is
// 100·(Skill·skillRatio + Requirement·requirementRatio); with only one list it
// is 100·thatRatio; with neither it is Baseline. KeywordBonus is added per
// generic keyword present in both texts, then the score is clamped to [0,100]
// and rounded.
func ScoreCompatibility(resumeText string, job JobInput, w Weights) types.CompatibilityAssessment {
	resume := strings.ToLower(resumeText)
	description := strings.ToLower(job.Description)

	matched, missing := MatchSkills(resumeText, job.Skills)
	skillCount := len(matched) + len(missing)
	keywords := requirementKeywords(job.Requirements)

	var base float64
	switch {
	case skillCount > 0 && len(keywords) > 0:
		base = 100 * (w.Skill*ratio(len(matched), skillCount) + w.Requirement*keywordRatio(resume, keywords))
	case skillCount > 0:
		base = 100 * ratio(len(matched), skillCount)
	case len(keywords) > 0:
		base = 100 * keywordRatio(resume, keywords)
	default:
		base = w.Baseline
	}

	for _, kw := range GenericKeywords {
		if strings.Contains(resume, kw) && strings.Contains(description, kw) {
			base += w.KeywordBonus
		}
	}

	score := int(math.Round(math.Max(0, math.Min(100, base))))

	return types.CompatibilityAssessment{
		Score:         score,
		Strengths:     PadAdvice(templated("Experiência comprovada em %s", matched, MaxStrengths), DefaultStrengths, MinStrengths),
		Weaknesses:    PadAdvice(templated("Experiência em %s não evidenciada", missing, MaxWeaknesses), DefaultWeaknesses, MinWeaknesses),
		Improvements:  PadAdvice(templated("Incluir evidências de experiência com %s", missing, MaxImprovements), DefaultImprovements, MinImprovements),
		MatchedSkills: matched,
		MissingSkills: missing,
	}
}

// PadAdvice drops blank and duplicate items, then appends boilerplate entries
// not already present until there are at least atLeast entries or the
// boilerplate is exhausted.
func PadAdvice(items, boilerplate []string, atLeast int) []string {
	out := make([]string, 0, max(len(items), atLeast))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" && !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	for _, b := range boilerplate {
		if len(out) >= atLeast {
			break
		}
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

// MatchSkills splits skills into those contained in resumeText and those
// that are not, keeping the given casing and order. Blank skills are dropped.
func MatchSkills(resumeText string, skills []string) (matched, missing []string) {
	resume := strings.ToLower(resumeText)
	matched = make([]string, 0, len(skills))
	missing = make([]string, 0, len(skills))
	for _, skill := range skills {
		s := strings.TrimSpace(skill)
		if s == "" {
			continue
		}
		if strings.Contains(resume, strings.ToLower(s)) {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	return matched, missing
}

// requirementKeywords returns the distinct lower-cased words longer than
// minKeywordLength characters. A requirement without such words is its own keyword.
func requirementKeywords(requirements []string) []string {
	seen := make(map[string]bool)
	var keywords []string
	add := func(kw string) {
		if kw != "" && !seen[kw] {
			seen[kw] = true
			keywords = append(keywords, kw)
		}
	}

	for _, req := range requirements {
		req = strings.ToLower(strings.TrimSpace(req))
		found := false
		for _, word := range strings.Fields(req) {
			word = strings.Trim(word, ".,;:()!?\"'")
			if utf8.RuneCountInString(word) > minKeywordLength {
				add(word)
				found = true
			}
		}
		if !found {
			add(req)
		}
	}
	return keywords
}

func keywordRatio(resume string, keywords []string) float64 {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(resume, kw) {
			hits++
		}
	}
	return ratio(hits, len(keywords))
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func templated(format string, values []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, v := range values {
		if len(out) == limit {
			break
		}
		out = append(out, fmt.Sprintf(format, v))
	}
	return out
}
