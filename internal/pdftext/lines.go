package pdftext

import (
	"sort"
	"strings"

	"github.com/local/outliner/internal/document"
)

const (
	// DefaultRowTolerance groups glyphs whose baselines differ by at most this many points.
	DefaultRowTolerance = 2.0
	// wordGapRatio is the horizontal gap, relative to font size, that implies a space.
	wordGapRatio = 0.25
)

type glyph struct {
	Text string
	Font string
	Size float64
	X, Y float64
	W    float64
}

type row struct {
	yMin, yMax float64
	glyphs     []glyph
}

// groupIntoRows buckets glyphs by baseline. Rows are returned top of page first.
func groupIntoRows(glyphs []glyph, tolerance float64) [][]glyph {
	var rows []row
	for _, g := range glyphs {
		found := false
		for i := range rows {
			if g.Y >= rows[i].yMin-tolerance && g.Y <= rows[i].yMax+tolerance {
				rows[i].glyphs = append(rows[i].glyphs, g)
				if g.Y < rows[i].yMin {
					rows[i].yMin = g.Y
				}
				if g.Y > rows[i].yMax {
					rows[i].yMax = g.Y
				}
				found = true
				break
			}
		}
		if !found {
			rows = append(rows, row{yMin: g.Y, yMax: g.Y, glyphs: []glyph{g}})
		}
	}

	// PDF user space grows upwards
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].yMax > rows[j].yMax })

	out := make([][]glyph, 0, len(rows))
	for _, r := range rows {
		sort.SliceStable(r.glyphs, func(i, j int) bool { return r.glyphs[i].X < r.glyphs[j].X })
		out = append(out, r.glyphs)
	}
	return out
}

// mergeSpans joins neighbouring glyphs of the same font and size into spans.
func mergeSpans(glyphs []glyph) []document.Span {
	var spans []document.Span
	var prev *glyph
	for i := range glyphs {
		g := &glyphs[i]
		if g.Text == "" {
			continue
		}
		if prev != nil && len(spans) > 0 {
			last := &spans[len(spans)-1]
			gap := g.X - (prev.X + prev.W)
			if gap > wordGapRatio*prev.Size && !strings.HasSuffix(last.Text, " ") && !strings.HasPrefix(g.Text, " ") {
				last.Text += " "
			}
			if g.Font == last.Font && g.Size == last.Size {
				last.Text += g.Text
				prev = g
				continue
			}
		}
		spans = append(spans, document.Span{Text: g.Text, Size: g.Size, Font: g.Font})
		prev = g
	}
	return spans
}

// buildPage rebuilds lines and spans from positioned glyphs.
func buildPage(glyphs []glyph, tolerance float64) document.Page {
	var page document.Page
	for _, r := range groupIntoRows(glyphs, tolerance) {
		spans := mergeSpans(r)
		if len(spans) == 0 {
			continue
		}
		page.Lines = append(page.Lines, document.Line{Spans: spans})
	}
	return page
}
