package parsing

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

type seniorityRule struct {
	level    types.Seniority
	keywords []string
}

type workModelRule struct {
	model    types.WorkModel
	keywords []string
}

// Rules are evaluated in order; the first tier with a matching keyword wins.
var seniorityRules = []seniorityRule{
	{types.SeniorityJunior, []string{"junior", "júnior", "jr"}},
	{types.SeniorityPleno, []string{"pleno", "mid-level"}},
	{types.SenioritySenior, []string{"senior", "sênior", "sr"}},
	{types.SeniorityEspecialista, []string{"especialista", "expert", "lead"}},
}

var workModelRules = []workModelRule{
	{types.WorkModelRemoto, []string{"remoto", "remote", "home office"}},
	{types.WorkModelHibrido, []string{"híbrido", "hibrido", "hybrid"}},
	{types.WorkModelPresencial, []string{"presencial", "on-site", "escritório"}},
}

// ClassifySeniority returns the first seniority tier whose keywords occur in text,
// or SeniorityUnknown.
func ClassifySeniority(text string) types.Seniority {
	lower := strings.ToLower(normalize(text))
	for _, rule := range seniorityRules {
		if containsAny(lower, rule.keywords) {
			return rule.level
		}
	}
	return types.SeniorityUnknown
}

// ClassifyWorkModel returns the first work model whose keywords occur in text,
// or WorkModelUnknown.
func ClassifyWorkModel(text string) types.WorkModel {
	lower := strings.ToLower(normalize(text))
	for _, rule := range workModelRules {
		if containsAny(lower, rule.keywords) {
			return rule.model
		}
	}
	return types.WorkModelUnknown
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
