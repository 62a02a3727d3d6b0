package parsing

import "strings"

// SkillVocabulary is the fixed list of technology and process terms recognized
// without an LLM, in canonical casing.
var SkillVocabulary = []string{
	"JavaScript", "TypeScript", "React", "Angular", "Vue.js", "Node.js",
	"Python", "Java", "C#", "PHP", "HTML", "CSS", "SQL",
	"MongoDB", "PostgreSQL", "MySQL", "Git", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "REST", "GraphQL",
	"Agile", "Scrum", "TDD", "CI/CD",
}

// ExtractSkills returns the vocabulary terms contained in text, in vocabulary order.
// Matching is case-insensitive substring containment, so "Java" also matches
// inside "JavaScript" and "SQL" inside "PostgreSQL".
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var skills []string
	for _, skill := range SkillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	return skills
}
