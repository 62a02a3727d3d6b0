package profile

import (
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
)

// IsIncomplete reports whether a stored profile should be replaced by a fresh
// extraction: it is nil, lacks any contact field, or has no education,
// experience or skills.
func IsIncomplete(p *types.ResumeProfile) bool {
	if p == nil {
		return true
	}
	if p.FullName == nil || p.Email == nil || p.Phone == nil {
		return true
	}
	return p.Education == nil && p.Experience == nil && len(p.Skills) == 0
}

// Merge returns a copy of existing whose nil fields are filled from fresh.
// Either argument may be nil.
func Merge(existing, fresh *types.ResumeProfile) *types.ResumeProfile {
	switch {
	case existing == nil && fresh == nil:
		return nil
	case existing == nil:
		merged := *fresh
		return &merged
	case fresh == nil:
		merged := *existing
		return &merged
	}

	merged := *existing
	merged.FullName = firstString(existing.FullName, fresh.FullName)
	merged.Email = firstString(existing.Email, fresh.Email)
	merged.Phone = firstString(existing.Phone, fresh.Phone)
	merged.Address = firstString(existing.Address, fresh.Address)
	merged.Education = firstString(existing.Education, fresh.Education)
	merged.Experience = firstString(existing.Experience, fresh.Experience)
	merged.Skills = firstList(existing.Skills, fresh.Skills)
	merged.Certifications = firstList(existing.Certifications, fresh.Certifications)
	merged.Projects = firstList(existing.Projects, fresh.Projects)
	return &merged
}

func firstString(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

func firstList(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	if len(b) > 0 {
		return b
	}
	return nil
}

// Normalize trims every field of p in place, turns blank values into nil and
// applies the list caps. It is used on profiles that did not come from Extract.
func Normalize(p *types.ResumeProfile) *types.ResumeProfile {
	if p == nil {
		return nil
	}
	for _, field := range []**string{&p.FullName, &p.Email, &p.Phone, &p.Address, &p.Education, &p.Experience} {
		if *field != nil {
			*field = optional(**field)
		}
	}
	if p.Education != nil {
		p.Education = optional(truncate(*p.Education, MaxEducationLength))
	}
	if p.Experience != nil {
		p.Experience = optional(truncate(*p.Experience, MaxExperienceLength))
	}
	p.Skills = capList(p.Skills, MaxSkills)
	p.Certifications = capList(p.Certifications, MaxCertifications)
	p.Projects = capList(p.Projects, MaxProjects)
	return p
}

func capList(items []string, limit int) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == limit {
			break
		}
	}
	return out
}
