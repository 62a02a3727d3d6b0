// Package profile extracts personal and professional data from résumé text
// using line-anchored patterns and section headings.
package profile

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-optimizer/internal/types"
	"golang.org/x/text/unicode/norm"
)

// Field bounds, in characters and items.
const (
	MaxEducationLength  = 500
	MaxExperienceLength = 1000

	MinSkillLength = 2
	MaxSkillLength = 50
	MaxSkills      = 20

	MinCertificationLength = 6
	MaxCertifications      = 10

	MinProjectLength = 11
	MaxProjects      = 10
)

var (
	nameRe    = regexp.MustCompile(`^([A-ZÀ-ÖØ-Þ][a-zß-öø-ÿ]+(?:[ \t]+[A-ZÀ-ÖØ-Þ][a-zß-öø-ÿ]+)+)`)
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe   = regexp.MustCompile(`\(?\d{2}\)?[ \t]*\d{4,5}-?\d{4}`)
	streetRe  = regexp.MustCompile(`(?im)^[ \t]*(?:endereço[ \t]*:[ \t]*)?((?:rua|avenida|alameda|travessa|praça|rodovia|estrada|av\.|r\.)[ \t][^\n]+)`)
	cityUFRe  = regexp.MustCompile(`([A-ZÀ-ÖØ-Þ][a-zß-öø-ÿ]+(?:[ \t]+(?:d[aeo]s?[ \t]+)?[A-ZÀ-ÖØ-Þ][a-zß-öø-ÿ]+)*,[ \t]*[A-Z]{2})\b`)
	skillSeps = ",\n•-"
)

// Extract builds a ResumeProfile from résumé text. It returns nil when the
// text carries a placeholder marker, meaning the file was never converted.
// Fields that are not found are nil.
func Extract(text string) *types.ResumeProfile {
	if types.HasPlaceholderMarker(text) {
		return nil
	}

	text = norm.NFC.String(strings.ReplaceAll(text, "\r\n", "\n"))
	sections := splitSections(text)

	return &types.ResumeProfile{
		FullName:       optional(extractName(text)),
		Email:          optional(emailRe.FindString(text)),
		Phone:          optional(phoneRe.FindString(text)),
		Address:        optional(extractAddress(text)),
		Education:      optional(truncate(sections.text(sectionEducation), MaxEducationLength)),
		Experience:     optional(truncate(sections.text(sectionExperience), MaxExperienceLength)),
		Skills:         splitSkills(sections[sectionSkills]),
		Certifications: lineItems(sections[sectionCertifications], MinCertificationLength, MaxCertifications),
		Projects:       lineItems(sections[sectionProjects], MinProjectLength, MaxProjects),
	}
}

// extractName returns the first capitalized multi-word sequence at the start
// of a line that is not a section heading.
func extractName(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if _, _, ok := parseHeading(line); ok {
			continue
		}
		if m := nameRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func extractAddress(text string) string {
	if m := streetRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := cityUFRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func splitSkills(lines []string) []string {
	var skills []string
	for _, line := range lines {
		for _, part := range strings.FieldsFunc(line, func(r rune) bool { return strings.ContainsRune(skillSeps, r) }) {
			part = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(part), "*"))
			n := utf8.RuneCountInString(part)
			if n < MinSkillLength || n > MaxSkillLength {
				continue
			}
			skills = append(skills, part)
			if len(skills) == MaxSkills {
				return skills
			}
		}
	}
	return skills
}

// lineItems returns one item per body line, bullet stripped, keeping items of
// at least minLen characters up to limit items.
func lineItems(lines []string, minLen, limit int) []string {
	var items []string
	for _, line := range lines {
		item := stripBullet(line)
		if utf8.RuneCountInString(item) < minLen {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items
}

func stripBullet(line string) string {
	line = strings.TrimSpace(line)
	for _, prefix := range []string{"•", "-", "*"} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return line
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
