// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4)))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s to the box content width, counting runes.
func pad(s string) string {
	if n := boxWidth - 4 - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// truncate shortens s to limit runes, ending with "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// writeList appends up to limit items under heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString("  • " + item + "\n")
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintJobPosting outputs a human-readable summary of the extracted job.
// ext may be nil for pasted job text.
func (p *Printer) PrintJobPosting(job types.JobPosting, ext *types.JobExtraction) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Role:     %s\n", job.Title)
	fmt.Fprintf(&sb, "Company:  %s\n", job.Company)
	if job.Seniority != "" {
		fmt.Fprintf(&sb, "Level:    %s\n", job.Seniority)
	}
	if job.WorkModel != "" {
		fmt.Fprintf(&sb, "Model:    %s\n", job.WorkModel)
	}
	if ext != nil {
		fmt.Fprintf(&sb, "Source:   %s\n", ext.Source.Domain)
		fmt.Fprintf(&sb, "Confidence: %.2f\n", ext.Metadata.Confidence)
	}
	sb.WriteString("\n")

	writeList(&sb, "Skills", job.Skills, maxItemsToShow)
	writeList(&sb, "Requirements", job.Requirements, 3)

	p.printBox("PARSED JOB POSTING", strings.TrimSpace(sb.String()))
}

// PrintProfile outputs the extracted candidate profile. A nil profile means
// the résumé could not be read.
func (p *Printer) PrintProfile(profile *types.ResumeProfile) {
	if profile == nil {
		p.printBox("CANDIDATE PROFILE", "No profile extracted (placeholder résumé content)")
		return
	}

	var sb strings.Builder
	for _, field := range []struct {
		label string
		value *string
	}{
		{"Name", profile.FullName},
		{"Email", profile.Email},
		{"Phone", profile.Phone},
		{"Address", profile.Address},
	} {
		value := "-"
		if field.value != nil {
			value = *field.value
		}
		fmt.Fprintf(&sb, "%-9s %s\n", field.label+":", value)
	}
	sb.WriteString("\n")

	writeList(&sb, "Skills", profile.Skills, maxItemsToShow)
	writeList(&sb, "Certifications", profile.Certifications, 3)

	p.printBox("CANDIDATE PROFILE", strings.TrimSpace(sb.String()))
}

// PrintAssessment outputs the compatibility score with matched and missing skills.
func (p *Printer) PrintAssessment(a types.CompatibilityAssessment) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/100\n\n", a.Score)

	writeList(&sb, "Matched skills", a.MatchedSkills, maxItemsToShow)
	writeList(&sb, "Missing skills", a.MissingSkills, maxItemsToShow)
	writeList(&sb, "Improvements", a.Improvements, 3)

	p.printBox("COMPATIBILITY", strings.TrimSpace(sb.String()))
}
