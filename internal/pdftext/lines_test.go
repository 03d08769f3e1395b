package pdftext

import (
	"testing"

	"github.com/local/outliner/internal/document"
)

// chars lays out s one glyph per rune, 6pt apart, starting at x.
func chars(s, font string, size, x, y float64) []glyph {
	var out []glyph
	for _, r := range s {
		out = append(out, glyph{Text: string(r), Font: font, Size: size, X: x, Y: y, W: 6})
		x += 6
	}
	return out
}

func TestBuildPage_RowsTopFirst(t *testing.T) {
	var glyphs []glyph
	glyphs = append(glyphs, chars("body", "Times", 12, 72, 600)...)
	glyphs = append(glyphs, chars("Title", "Times-Bold", 20, 72, 700)...)

	page := buildPage(glyphs, DefaultRowTolerance)
	if len(page.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(page.Lines))
	}
	if got := page.Lines[0].Text(); got != "Title" {
		t.Errorf("first line = %q, want Title", got)
	}
	if got := page.Lines[1].Text(); got != "body" {
		t.Errorf("second line = %q, want body", got)
	}
}

func TestBuildPage_OutOfOrderGlyphs(t *testing.T) {
	glyphs := chars("abc", "Times", 12, 100, 500)
	glyphs[0], glyphs[2] = glyphs[2], glyphs[0]
	// slightly raised glyph still belongs to the row
	glyphs[1].Y += 1

	page := buildPage(glyphs, DefaultRowTolerance)
	if len(page.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(page.Lines))
	}
	if got := page.Lines[0].Text(); got != "abc" {
		t.Errorf("line = %q, want abc", got)
	}
}

func TestMergeSpans(t *testing.T) {
	var glyphs []glyph
	glyphs = append(glyphs, chars("1.", "Arial-Bold", 14, 72, 500)...)
	// 20pt gap after "1." inserts a word space
	glyphs = append(glyphs, chars("Scope", "Arial-Bold", 14, 104, 500)...)
	glyphs = append(glyphs, chars("note", "Arial", 10, 134, 500)...)

	got := mergeSpans(glyphs)
	want := []document.Span{
		{Text: "1. Scope", Size: 14, Font: "Arial-Bold"},
		{Text: "note", Size: 10, Font: "Arial"},
	}
	if len(got) != len(want) {
		t.Fatalf("spans = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildPage_Empty(t *testing.T) {
	if page := buildPage(nil, DefaultRowTolerance); len(page.Lines) != 0 {
		t.Fatalf("lines = %d, want 0", len(page.Lines))
	}
	blank := []glyph{{Text: "", Font: "Times", Size: 12, X: 1, Y: 1}}
	if page := buildPage(blank, DefaultRowTolerance); len(page.Lines) != 0 {
		t.Fatalf("lines = %d, want 0", len(page.Lines))
	}
}
