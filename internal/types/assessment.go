package types

// CompatibilityAssessment is the scored comparison of a résumé against a job posting.
type CompatibilityAssessment struct {
	Score         int      `json:"score"`
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Improvements  []string `json:"improvements"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// OptimizedResume is a rendered résumé document tuned to a job posting.
type OptimizedResume struct {
	Content      string   `json:"content"`
	Improvements []string `json:"improvements"`
}
