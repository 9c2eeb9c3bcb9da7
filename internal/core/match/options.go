package match

import (
	"fmt"

	"github.com/docketlab/entgraph/internal/core/model"
)

// Kind selects which matching cascade Match dispatches to.
type Kind string

const (
	KindPerson       Kind = "person"
	KindOrganization Kind = "organization"
)

// Options tunes the matching cascade. Zero values are not usable; start from
// DefaultOptions. Callers own validation at their parsing boundary, before
// any matching runs.
type Options struct {
	Kind Kind

	// MinConfidence is the acceptance floor for IsMatch.
	MinConfidence float64

	// MaxEditDistance bounds the Levenshtein acceptance rule.
	MaxEditDistance int

	// EnablePartial opts in to substring-containment matching.
	EnablePartial bool

	// Confidence-level bucket cuts.
	HighThreshold   float64
	MediumThreshold float64
	LowThreshold    float64
}

// DefaultOptions returns the tuning the engine ships with.
func DefaultOptions() Options {
	return Options{
		Kind:            KindPerson,
		MinConfidence:   0.3,
		MaxEditDistance: 3,
		HighThreshold:   0.8,
		MediumThreshold: 0.5,
		LowThreshold:    0.3,
	}
}

// Validate rejects out-of-range option values.
func (o Options) Validate() error {
	if o.Kind != KindPerson && o.Kind != KindOrganization {
		return fmt.Errorf("invalid kind %q", o.Kind)
	}
	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		return fmt.Errorf("min confidence %v outside [0,1]", o.MinConfidence)
	}
	if o.MaxEditDistance < 0 {
		return fmt.Errorf("max edit distance %d is negative", o.MaxEditDistance)
	}
	for _, t := range []float64{o.HighThreshold, o.MediumThreshold, o.LowThreshold} {
		if t < 0 || t > 1 {
			return fmt.Errorf("confidence threshold %v outside [0,1]", t)
		}
	}
	if o.LowThreshold > o.MediumThreshold || o.MediumThreshold > o.HighThreshold {
		return fmt.Errorf("confidence thresholds must be ordered low <= medium <= high")
	}
	return nil
}

// Level buckets a confidence score using the configured thresholds.
func (o Options) Level(confidence float64) model.ConfidenceLevel {
	switch {
	case confidence >= o.HighThreshold:
		return model.ConfidenceHigh
	case confidence >= o.MediumThreshold:
		return model.ConfidenceMedium
	case confidence >= o.LowThreshold:
		return model.ConfidenceLow
	default:
		return model.ConfidenceNoMatch
	}
}
