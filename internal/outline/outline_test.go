package outline

import (
	"reflect"
	"strings"
	"testing"

	"github.com/local/outliner/internal/document"
)

func span(text string, size float64, font string) document.Span {
	return document.Span{Text: text, Size: size, Font: font}
}

func line(text string, size float64, font string) document.Line {
	return document.NewLine(span(text, size, font))
}

// bodyLines returns n lines of ordinary paragraph text at size.
func bodyLines(n int, size float64) []document.Line {
	lines := make([]document.Line, n)
	for i := range lines {
		lines[i] = line("Lorem ipsum dolor sit amet.", size, "Times-Roman")
	}
	return lines
}

func pageOf(lines ...[]document.Line) document.Page {
	var p document.Page
	for _, ls := range lines {
		p.Lines = append(p.Lines, ls...)
	}
	return p
}

func TestEstimate_BodySizeIsMostFrequent(t *testing.T) {
	pages := []document.Page{document.NewPage(
		line("a", 10, "Times"),
		line("b", 10, "Times"),
		line("c", 10, "Times"),
		line("d", 12, "Times"),
		line("e", 14, "Times"),
	)}
	base := Estimate(pages, DefaultHeuristics())
	if base.BodySize != 10 {
		t.Errorf("BodySize = %d, want 10", base.BodySize)
	}
	want := LevelMap{14: H1, 12: H2}
	if !reflect.DeepEqual(base.Levels, want) {
		t.Errorf("Levels = %v, want %v", base.Levels, want)
	}
}

func TestEstimate_LevelMapTopThreeAboveBuffer(t *testing.T) {
	p := pageOf(
		bodyLines(10, 10),
		[]document.Line{
			line("x", 11, "Times"),
			line("x", 16, "Times"),
			line("x", 20, "Times"),
			line("x", 24, "Times"),
			line("x", 28, "Times"),
		},
	)
	base := Estimate([]document.Page{p}, DefaultHeuristics())
	want := LevelMap{28: H1, 24: H2, 20: H3}
	if !reflect.DeepEqual(base.Levels, want) {
		t.Errorf("Levels = %v, want %v", base.Levels, want)
	}
	if got := base.Levels.Sizes(); !reflect.DeepEqual(got, []int{28, 24, 20}) {
		t.Errorf("Sizes() = %v", got)
	}
	for size := range base.Levels {
		if size <= base.BodySize+1 {
			t.Errorf("size %d within buffer of body size %d", size, base.BodySize)
		}
	}
}

func TestEstimate_TieGoesToFirstSeen(t *testing.T) {
	pages := []document.Page{document.NewPage(
		line("a", 12, "Times"),
		line("b", 10, "Times"),
		line("c", 10, "Times"),
		line("d", 12, "Times"),
	)}
	if got := Estimate(pages, DefaultHeuristics()).BodySize; got != 12 {
		t.Errorf("BodySize = %d, want 12", got)
	}
}

func TestEstimate_CountsSpansNotCharacters(t *testing.T) {
	long := strings.Repeat("word ", 200)
	pages := []document.Page{document.NewPage(
		line(long, 9, "Times"),
		line("short", 11, "Times"),
		line("short", 11, "Times"),
	)}
	if got := Estimate(pages, DefaultHeuristics()).BodySize; got != 11 {
		t.Errorf("BodySize = %d, want 11", got)
	}
}

func TestEstimate_SamplesOnlyLeadingPages(t *testing.T) {
	var pages []document.Page
	for i := 0; i < 5; i++ {
		pages = append(pages, pageOf(bodyLines(3, 10)))
	}
	// A sixth page dominated by tiny print must not shift the body size.
	pages = append(pages, pageOf(bodyLines(100, 7)))

	base := Estimate(pages, DefaultHeuristics())
	if base.BodySize != 10 {
		t.Errorf("BodySize = %d, want 10", base.BodySize)
	}

	h := DefaultHeuristics()
	h.SamplePages = 6
	if got := Estimate(pages, h).BodySize; got != 7 {
		t.Errorf("BodySize with 6 sampled pages = %d, want 7", got)
	}
}

func TestEstimate_NoText(t *testing.T) {
	for name, pages := range map[string][]document.Page{
		"no pages":    nil,
		"empty pages": {{}, {}},
		"empty lines": {document.NewPage(document.Line{}, document.Line{})},
	} {
		t.Run(name, func(t *testing.T) {
			base := Estimate(pages, DefaultHeuristics())
			if base.BodySize != DefaultBodySize {
				t.Errorf("BodySize = %d, want %d", base.BodySize, DefaultBodySize)
			}
			if len(base.Levels) != 0 {
				t.Errorf("Levels = %v, want empty", base.Levels)
			}
		})
	}
}

func TestScore(t *testing.T) {
	h := DefaultHeuristics()
	tests := []struct {
		name string
		line document.Line
		want int
	}{
		{"bold numbered", line("1. Introduction", 13, "Arial-BoldMT"), 13},
		{"plain", line("Introduction", 13, "ArialMT"), 3},
		{"bold only", line("Introduction", 13, "ARIAL,BOLD"), 8},
		{"nested number", line("  2.1.3. Scope", 13, "ArialMT"), 8},
		{"letter marker", line("A. Appendix", 13, "ArialMT"), 8},
		{"lowercase letter", line("a. appendix", 13, "ArialMT"), 3},
		{"no space after dot", line("1.Introduction", 13, "ArialMT"), 3},
		{"no dot", line("1 Introduction", 13, "ArialMT"), 3},
		{"two letters", line("AB. Scope", 13, "ArialMT"), 3},
		{"smaller than body", line("note", 8, "ArialMT"), -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Score(tt.line, 10, h)
			if !ok {
				t.Fatal("Score reported ok=false")
			}
			if got != tt.want {
				t.Errorf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_UsesFirstSpanStyleAndWholeLineText(t *testing.T) {
	h := DefaultHeuristics()
	// The number sits in its own span; the pattern applies to the concatenated text.
	l := document.NewLine(span("3.", 14, "Helvetica"), span(" ", 14, "Helvetica"), span("Results", 14, "Helvetica-Bold"))
	got, _ := Score(l, 10, h)
	if got != 9 {
		t.Errorf("Score = %d, want 9 (size 4 + numbered 5, first span not bold)", got)
	}
}

func TestScore_EmptyLine(t *testing.T) {
	if _, ok := Score(document.Line{}, 10, DefaultHeuristics()); ok {
		t.Error("expected ok=false for a line without spans")
	}
}

func TestBuild_AcceptanceRule(t *testing.T) {
	p := pageOf(
		bodyLines(20, 10),
		[]document.Line{
			line("1. Introduction", 13, "Times-Bold"),
			line("Introduction", 13, "Times-Roman"),
			line("Ignored, not a heading size", 11, "Times-Bold"),
		},
		// Pads the ladder so that 13 is H2; the H1 line itself scores only 4.
		[]document.Line{line("Big", 14, "Times-Roman")},
	)
	base := Estimate([]document.Page{p}, DefaultHeuristics())
	res := Build([]document.Page{p}, base, DefaultHeuristics())

	want := []Entry{{Level: H2, Text: "1. Introduction", Page: 1}}
	if !reflect.DeepEqual(res.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", res.Outline, want)
	}
}

func TestBuild_LengthCap(t *testing.T) {
	h := DefaultHeuristics()
	base := Baseline{BodySize: 10, Levels: LevelMap{20: H1}}
	short := strings.Repeat("é", 149)
	long := strings.Repeat("é", 150)
	p := document.NewPage(
		line(short, 20, "Times"),
		line(long, 20, "Times"),
		line("   "+short+"   ", 20, "Times"),
	)
	res := Build([]document.Page{p}, base, h)
	if len(res.Outline) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Outline))
	}
	for _, e := range res.Outline {
		if e.Text != short {
			t.Errorf("unexpected entry text length %d", len([]rune(e.Text)))
		}
	}
}

func TestBuild_PreservesTraversalOrder(t *testing.T) {
	h := DefaultHeuristics()
	base := Baseline{BodySize: 10, Levels: LevelMap{24: H1, 18: H2, 16: H3}}
	pages := []document.Page{
		document.NewPage(
			line("Minor point", 16, "Times-Bold"),
			line("Major point", 24, "Times-Bold"),
		),
		document.NewPage(line("Section", 18, "Times-Bold")),
		document.NewPage(
			line("Chapter", 24, "Times-Bold"),
			line("Aside", 16, "Times-Bold"),
		),
	}
	res := Build(pages, base, h)
	want := []Entry{
		{H3, "Minor point", 1},
		{H1, "Major point", 1},
		{H2, "Section", 2},
		{H1, "Chapter", 3},
		{H3, "Aside", 3},
	}
	if !reflect.DeepEqual(res.Outline, want) {
		t.Errorf("Outline = %+v, want %+v", res.Outline, want)
	}
}

func TestBuild_SkipsLinesWithoutSpans(t *testing.T) {
	base := Baseline{BodySize: 10, Levels: LevelMap{20: H1}}
	p := document.NewPage(document.Line{}, line("Heading", 20, "Bold"), document.Line{Spans: []document.Span{}})
	res := Build([]document.Page{p}, base, DefaultHeuristics())
	if len(res.Outline) != 1 || res.Outline[0].Text != "Heading" {
		t.Errorf("Outline = %+v", res.Outline)
	}
}

func TestBuild_TitleIgnoresAcceptanceRule(t *testing.T) {
	base := Baseline{BodySize: 10, Levels: LevelMap{14: H1}}
	// Score 4 keeps it out of the outline, but it is still the only first-page H1.
	p := document.NewPage(line("  A Quiet Title  ", 14, "Times-Roman"))
	res := Build([]document.Page{p}, base, DefaultHeuristics())
	if len(res.Outline) != 0 {
		t.Errorf("expected empty outline, got %+v", res.Outline)
	}
	if res.Title != "A Quiet Title" {
		t.Errorf("Title = %q", res.Title)
	}
}

func TestBuild_TitleHighestScoreFirstWinsTies(t *testing.T) {
	base := Baseline{BodySize: 10, Levels: LevelMap{20: H1, 16: H2}}
	pages := []document.Page{
		document.NewPage(
			line("First", 20, "Times-Roman"),
			line("Second", 20, "Times-Bold"),
			line("Third", 20, "Times-Bold"),
			line("Bigger score but H2", 16, "Times-Bold"),
		),
		document.NewPage(line("1. Later page", 20, "Times-Bold")),
	}
	res := Build(pages, base, DefaultHeuristics())
	if res.Title != "Second" {
		t.Errorf("Title = %q, want %q", res.Title, "Second")
	}
}

func TestAnalyze_TitleFallsBackToFirstH1(t *testing.T) {
	pages := []document.Page{
		pageOf(bodyLines(10, 10)),
		pageOf(
			[]document.Line{
				line("Background", 16, "Times-Bold"),
				line("Overview", 20, "Times-Bold"),
				line("Details", 20, "Times-Bold"),
			},
			bodyLines(10, 10),
		),
	}
	_, res := Analyze(pages, "report", DefaultHeuristics())
	if res.Title != "Overview" {
		t.Errorf("Title = %q, want %q", res.Title, "Overview")
	}
	if len(res.Outline) != 3 || res.Outline[0].Page != 2 {
		t.Errorf("Outline = %+v", res.Outline)
	}
}

func TestAnalyze_TitleFallsBackToFirstEntry(t *testing.T) {
	h := DefaultHeuristics()
	base := Baseline{BodySize: 10, Levels: LevelMap{20: H1, 16: H2}}
	pages := []document.Page{
		document.NewPage(line("Intro", 16, "Times-Bold")),
		document.NewPage(line("Methods", 16, "Times-Bold")),
	}
	res := Build(pages, base, h)
	if got := resolveTitle(res.Title, res.Outline, "x"); got != "Intro" {
		t.Errorf("title = %q, want %q", got, "Intro")
	}
}

func TestAnalyze_NoText(t *testing.T) {
	base, res := Analyze([]document.Page{{}, {}}, "quarterly_sales_report", DefaultHeuristics())
	if base.BodySize != DefaultBodySize {
		t.Errorf("BodySize = %d", base.BodySize)
	}
	if res.Title != "Quarterly Sales Report" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Outline == nil || len(res.Outline) != 0 {
		t.Errorf("Outline = %#v, want empty non-nil slice", res.Outline)
	}
}

func TestResolveTitle(t *testing.T) {
	entries := []Entry{{H2, "Scope", 1}, {H1, "Overview", 2}}
	tests := []struct {
		name      string
		candidate string
		entries   []Entry
		want      string
	}{
		{"candidate wins", "Main Title", entries, "Main Title"},
		{"first h1", "", entries, "Overview"},
		{"first entry", "", entries[:1], "Scope"},
		{"file name", "", nil, "My Doc"},
		{"empty entry text", "", []Entry{{H1, "", 1}}, "My Doc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveTitle(tt.candidate, tt.entries, "my_doc"); got != tt.want {
				t.Errorf("resolveTitle = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStemTitle(t *testing.T) {
	tests := map[string]string{
		"annual_report_2024": "Annual Report 2024",
		"HELLO_world":        "Hello World",
		"file":               "File",
		"":                   "",
	}
	for in, want := range tests {
		if got := StemTitle(in); got != want {
			t.Errorf("StemTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHeuristicsValidate(t *testing.T) {
	if err := DefaultHeuristics().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	h := DefaultHeuristics()
	h.SamplePages = 0
	h.SizeBuffer = -1
	if err := h.Validate(); err == nil {
		t.Error("expected validation error")
	}
}
