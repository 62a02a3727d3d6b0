package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and whitespace while keeping the line
// structure the extractors rely on: each line is trimmed, inner space runs
// collapse to one space and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}

	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// FromText wraps pasted job text in a Page. The source carries no URL.
func FromText(text string) *Page {
	cleaned := CleanText(text)
	return newPage(cleaned, types.Source{})
}
