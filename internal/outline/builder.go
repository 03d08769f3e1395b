package outline

import (
	"strings"
	"unicode/utf8"

	"github.com/local/outliner/internal/document"
)

// Entry is one heading of the outline.
type Entry struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"` // 1-based
}

// Result is the extracted structure of one document.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}

// Build walks every line of every page and collects headings in traversal order.
//
// The returned Title is the best scoring H1-sized line of the first page, or empty when the
// first page has none; fallbacks are applied by Analyze.
func Build(pages []document.Page, base Baseline, h Heuristics) Result {
	res := Result{Outline: []Entry{}}
	bestTitle := 0
	haveTitle := false

	for pageIdx, page := range pages {
		for _, line := range page.Lines {
			first, ok := line.First()
			if !ok {
				continue
			}
			level, ok := base.Levels[first.RoundedSize()]
			if !ok {
				continue
			}
			score, _ := Score(line, base.BodySize, h)
			text := strings.TrimSpace(line.Text())

			if score > h.ScoreThreshold && utf8.RuneCountInString(text) < h.MaxHeadingLength {
				res.Outline = append(res.Outline, Entry{Level: level, Text: text, Page: pageIdx + 1})
			}

			if pageIdx == 0 && level == H1 && (!haveTitle || score > bestTitle) {
				bestTitle, haveTitle = score, true
				res.Title = text
			}
		}
	}
	return res
}

// Analyze runs the full detection over pages. stem is the source file name without extension,
// used for the last-resort title.
func Analyze(pages []document.Page, stem string, h Heuristics) (Baseline, Result) {
	base := Estimate(pages, h)
	res := Build(pages, base, h)
	res.Title = resolveTitle(res.Title, res.Outline, stem)
	return base, res
}
