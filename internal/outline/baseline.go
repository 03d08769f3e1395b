package outline

import (
	"slices"

	"github.com/local/outliner/internal/document"
)

// Level is a heading level label.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// headingLevels is the ladder handed out to candidate sizes, largest first.
var headingLevels = [...]Level{H1, H2, H3}

// LevelMap maps a rounded font size to its heading level.
type LevelMap map[int]Level

// Sizes returns the mapped sizes, largest first.
func (m LevelMap) Sizes() []int {
	sizes := make([]int, 0, len(m))
	for size := range m {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)
	slices.Reverse(sizes)
	return sizes
}

// Baseline is the per-document typographic reference.
type Baseline struct {
	BodySize int
	Levels   LevelMap
}

// sizeTally counts sizes and remembers the order in which each size was first seen.
type sizeTally struct {
	order  []int
	counts map[int]int
}

func newSizeTally() *sizeTally { return &sizeTally{counts: make(map[int]int)} }

func (t *sizeTally) add(size int) {
	if _, seen := t.counts[size]; !seen {
		t.order = append(t.order, size)
	}
	t.counts[size]++
}

// mostCommon returns the size with the highest count; the earliest seen wins a tie.
func (t *sizeTally) mostCommon() (int, bool) {
	best, bestCount := 0, 0
	for _, size := range t.order {
		if c := t.counts[size]; c > bestCount {
			best, bestCount = size, c
		}
	}
	return best, bestCount > 0
}

// Estimate derives the body size and heading ladder from the first h.SamplePages pages.
// Every span counts once, regardless of its length.
func Estimate(pages []document.Page, h Heuristics) Baseline {
	n := min(h.SamplePages, len(pages))
	tally := newSizeTally()
	for _, page := range pages[:max(n, 0)] {
		for _, line := range page.Lines {
			for _, span := range line.Spans {
				tally.add(span.RoundedSize())
			}
		}
	}

	body, ok := tally.mostCommon()
	if !ok {
		return Baseline{BodySize: DefaultBodySize, Levels: LevelMap{}}
	}

	var candidates []int
	for _, size := range tally.order {
		if size > body+h.SizeBuffer {
			candidates = append(candidates, size)
		}
	}
	slices.Sort(candidates)
	slices.Reverse(candidates)

	levels := make(LevelMap, len(headingLevels))
	for i, size := range candidates {
		if i == len(headingLevels) {
			break
		}
		levels[size] = headingLevels[i]
	}
	return Baseline{BodySize: body, Levels: levels}
}
