package profile

import (
	"strings"
)

type section int

const (
	sectionNone section = iota
	sectionEducation
	sectionExperience
	sectionSkills
	sectionCertifications
	sectionProjects
	// sectionOther covers recognized headings whose body is not extracted.
	sectionOther
)

// maxHeadingWords bounds the label part of a heading line.
const maxHeadingWords = 4

var headingKeywords = []struct {
	section  section
	keywords []string
}{
	{sectionEducation, []string{"formação", "educação", "education", "escolaridade"}},
	{sectionExperience, []string{"experiência", "experiencia", "experience", "histórico profissional"}},
	{sectionSkills, []string{"habilidades", "competências", "competencias", "skills", "conhecimentos"}},
	{sectionCertifications, []string{"certificações", "certificados", "certifications", "cursos"}},
	{sectionProjects, []string{"projetos", "projects"}},
	{sectionOther, []string{
		"objetivo", "objective", "resumo", "summary", "perfil", "sobre",
		"idiomas", "languages", "contato", "contact", "informações adicionais", "referências",
	}},
}

// sectionBodies maps a section to its body lines in document order.
type sectionBodies map[section][]string

func (b sectionBodies) text(s section) string {
	return strings.Join(b[s], "\n")
}

// splitSections assigns every non-empty line following a heading to that
// heading's section until the next heading. Text after an inline
// "Heading: body" colon is the first body line.
func splitSections(text string) sectionBodies {
	bodies := sectionBodies{}
	current := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if s, inline, ok := parseHeading(line); ok {
			current = s
			if inline != "" && s != sectionOther {
				bodies[s] = append(bodies[s], inline)
			}
			continue
		}

		if current != sectionNone && current != sectionOther {
			bodies[current] = append(bodies[current], line)
		}
	}

	return bodies
}

// parseHeading reports whether line is a section heading. A heading starts
// with a known keyword and its label, the part before any colon, has at most
// maxHeadingWords words. The text after the colon is returned as inline body.
func parseHeading(line string) (section, string, bool) {
	label, inline := line, ""
	if i := strings.Index(line, ":"); i >= 0 {
		label, inline = line[:i], strings.TrimSpace(line[i+1:])
	}

	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" || len(strings.Fields(lower)) > maxHeadingWords {
		return sectionNone, "", false
	}

	for _, h := range headingKeywords {
		for _, kw := range h.keywords {
			if strings.HasPrefix(lower, kw) {
				return h.section, inline, true
			}
		}
	}
	return sectionNone, "", false
}
