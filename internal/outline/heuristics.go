// Package outline derives a document title and a heading outline from styled text spans.
//
// Detection is typographic: a body-text size is inferred from the most frequent span size in
// the first pages, up to three larger sizes are ranked into H1–H3, and every line set in one of
// those sizes is scored by size delta, bold weight and a leading list number.
package outline

import (
	"errors"
	"fmt"
)

// Default heuristic constants.
const (
	DefaultSamplePages      = 5
	DefaultSizeBuffer       = 1
	DefaultScoreThreshold   = 5
	DefaultMaxHeadingLength = 150
	DefaultBoldBonus        = 5
	DefaultNumberedBonus    = 5

	// DefaultBodySize is assumed when the sampled pages carry no text at all.
	DefaultBodySize = 12
)

// Heuristics holds the tunable constants of the detector.
type Heuristics struct {
	// SamplePages is how many leading pages feed the body-size estimate.
	SamplePages int
	// SizeBuffer is how many points a size must exceed the body size by, strictly, to rank as a heading size.
	SizeBuffer int
	// ScoreThreshold is the score a line must strictly exceed to enter the outline.
	ScoreThreshold int
	// MaxHeadingLength is the exclusive upper bound on heading length, in characters.
	MaxHeadingLength int
	BoldBonus        int
	NumberedBonus    int
}

// DefaultHeuristics returns the stock detector settings.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		SamplePages:      DefaultSamplePages,
		SizeBuffer:       DefaultSizeBuffer,
		ScoreThreshold:   DefaultScoreThreshold,
		MaxHeadingLength: DefaultMaxHeadingLength,
		BoldBonus:        DefaultBoldBonus,
		NumberedBonus:    DefaultNumberedBonus,
	}
}

// Validate rejects settings the detector cannot work with.
func (h Heuristics) Validate() error {
	var errs []error
	if h.SamplePages <= 0 {
		errs = append(errs, fmt.Errorf("sample pages must be positive, got %d", h.SamplePages))
	}
	if h.SizeBuffer < 0 {
		errs = append(errs, fmt.Errorf("size buffer must not be negative, got %d", h.SizeBuffer))
	}
	if h.MaxHeadingLength <= 0 {
		errs = append(errs, fmt.Errorf("max heading length must be positive, got %d", h.MaxHeadingLength))
	}
	if h.BoldBonus < 0 || h.NumberedBonus < 0 {
		errs = append(errs, errors.New("bonuses must not be negative"))
	}
	return errors.Join(errs...)
}
