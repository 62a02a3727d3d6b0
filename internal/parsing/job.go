// Package parsing extracts structured job data from unstructured posting text
// using label patterns and a fixed skill vocabulary.
package parsing

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
	"golang.org/x/text/unicode/norm"
)

// MaxTitleLength is the exclusive upper bound, in characters, for using the first line as title.
const MaxTitleLength = 100

// MaxDescriptionLength bounds descriptions and summaries.
const MaxDescriptionLength = 500

var (
	titleLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bvaga[ \t]*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)\bcargo[ \t]*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)\bposição[ \t]*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)\boportunidade[ \t]*:[ \t]*(.+)`),
	}
	companyLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bempresa[ \t]*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)\bcompanhia[ \t]*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)\borganização[ \t]*:[ \t]*(.+)`),
		regexp.MustCompile(`(?i)\bcliente[ \t]*:[ \t]*(.+)`),
	}

	requirementsHeading = regexp.MustCompile(`(?i)requisitos|requirements|qualificações|experiência|formação`)
	sectionEndHeading   = regexp.MustCompile(`(?i)benefícios|salário|contato|sobre|empresa`)
)

var bulletPrefixes = []string{"•", "-", "*"}

// ExtractJobFromText builds a JobPosting from pasted job text.
// Seniority and work model are left unknown on this path.
func ExtractJobFromText(text string) types.JobPosting {
	text = normalize(text)
	return types.JobPosting{
		Title:        ExtractTitle(text),
		Company:      ExtractCompany(text),
		Description:  truncate(strings.TrimSpace(text), MaxDescriptionLength, ""),
		Requirements: ExtractRequirements(text),
		Skills:       ExtractSkills(text),
	}
}

// ExtractJobFromHTML builds a JobPosting from sanitized page text.
func ExtractJobFromHTML(text, sourceURL string) types.JobPosting {
	text = normalize(text)
	posting := types.JobPosting{
		Title:        ExtractTitle(text),
		Company:      ExtractCompany(text),
		Requirements: ExtractRequirements(text),
		Skills:       ExtractSkills(text),
		Seniority:    ClassifySeniority(text),
		WorkModel:    ClassifyWorkModel(text),
		URL:          sourceURL,
	}
	posting.Description = DefaultSummary(posting.Company, posting.Title, strings.Join(topN(posting.Skills, 3), ", "))
	return posting
}

// ExtractTitle returns the first non-empty line when it is short enough,
// otherwise the first labelled value, otherwise the title placeholder.
func ExtractTitle(text string) string {
	if first := firstNonEmptyLine(text); first != "" && utf8.RuneCountInString(first) < MaxTitleLength {
		return first
	}
	if v := firstLabelMatch(text, titleLabels); v != "" {
		return v
	}
	return types.PlaceholderJobTitle
}

// ExtractCompany returns the first labelled company value or the company placeholder.
func ExtractCompany(text string) string {
	if v := firstLabelMatch(text, companyLabels); v != "" {
		return v
	}
	return types.PlaceholderCompany
}

// ExtractRequirements collects bullet lines inside a requirements section.
// Any line naming requirements or qualifications opens the section and any
// line naming benefits, salary, contact or the company closes it. A bullet
// that names requirements inside an open section is kept as an item.
func ExtractRequirements(text string) []string {
	var requirements []string
	inSection := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		item, isBullet := stripBullet(line)
		switch {
		case requirementsHeading.MatchString(line):
			if !inSection || !isBullet {
				inSection = true
				continue
			}
		case inSection && sectionEndHeading.MatchString(line):
			inSection = false
		}

		if inSection && isBullet && item != "" {
			requirements = append(requirements, item)
		}
	}

	return requirements
}

func firstNonEmptyLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func firstLabelMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

func stripBullet(line string) (string, bool) {
	for _, prefix := range bulletPrefixes {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(rest), true
		}
	}
	return line, false
}

// normalize composes accents so decomposed input matches the patterns.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return norm.NFC.String(text)
}

func truncate(s string, max int, ellipsis string) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-utf8.RuneCountInString(ellipsis)]) + ellipsis
}

func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
