package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/ranking"
	"github.com/jonathan/resume-optimizer/internal/strategy"
)

// Scoring overrides the confidence and compatibility weights. Nil sections
// keep the defaults.
type Scoring struct {
	Confidence    *parsing.ConfidenceWeights `json:"confidence,omitempty"`
	Compatibility *ranking.Weights           `json:"compatibility,omitempty"`
}

// UnmarshalJSON decodes each section over its defaults, so a section that
// names only some weights keeps the rest.
func (s *Scoring) UnmarshalJSON(data []byte) error {
	var raw struct {
		Confidence    json.RawMessage `json:"confidence"`
		Compatibility json.RawMessage `json:"compatibility"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Scoring{}
	if present(raw.Confidence) {
		w := parsing.DefaultConfidenceWeights()
		if err := json.Unmarshal(raw.Confidence, &w); err != nil {
			return fmt.Errorf("scoring.confidence: %w", err)
		}
		s.Confidence = &w
	}
	if present(raw.Compatibility) {
		w := ranking.DefaultWeights()
		if err := json.Unmarshal(raw.Compatibility, &w); err != nil {
			return fmt.Errorf("scoring.compatibility: %w", err)
		}
		s.Compatibility = &w
	}
	return nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Validate rejects negative weights and an all-zero confidence rubric.
func (s *Scoring) Validate() error {
	if c := s.Confidence; c != nil {
		if c.Required < 0 || c.Important < 0 || c.Optional < 0 {
			return fmt.Errorf("confidence weights must be non-negative")
		}
		if c.Required+c.Important+c.Optional == 0 {
			return fmt.Errorf("confidence weights must not all be zero")
		}
	}
	if w := s.Compatibility; w != nil {
		if w.Skill < 0 || w.Requirement < 0 || w.KeywordBonus < 0 {
			return fmt.Errorf("compatibility weights must be non-negative")
		}
		if w.Baseline < 0 || w.Baseline > 100 {
			return fmt.Errorf("compatibility baseline must be within [0,100], got %v", w.Baseline)
		}
	}
	return nil
}

// Resolve returns the effective weights. It is safe on a nil receiver.
func (s *Scoring) Resolve() strategy.Scoring {
	resolved := strategy.DefaultScoring()
	if s == nil {
		return resolved
	}
	if s.Confidence != nil {
		resolved.Confidence = *s.Confidence
	}
	if s.Compatibility != nil {
		resolved.Compatibility = *s.Compatibility
	}
	return resolved
}
