// Package document models the text layer of a PDF as pages of lines of styled spans,
// and defines the seam through which PDF backends feed that model.
package document

import (
    "context"
    "errors"
    "fmt"
    "math"
    "path/filepath"
    "strings"
)

// Span is a run of text rendered with one font at one size.
type Span struct {
    Text string
    Size float64 // font size in points, as reported by the backend
    Font string  // font name, e.g. "Helvetica-Bold"
}

// RoundedSize returns the font size rounded half-to-even.
func (s Span) RoundedSize() int { return int(math.RoundToEven(s.Size)) }

// Line is a sequence of spans sharing a visual baseline.
type Line struct {
    Spans []Span
}

// First returns the representative span of the line. ok is false for a line without spans.
func (l Line) First() (Span, bool) {
    if len(l.Spans) == 0 { return Span{}, false }
    return l.Spans[0], true
}

// Text concatenates the text of all spans, untrimmed.
func (l Line) Text() string {
    if len(l.Spans) == 1 { return l.Spans[0].Text }
    var b strings.Builder
    for _, s := range l.Spans {
        b.WriteString(s.Text)
    }
    return b.String()
}

// Page holds the lines of one page in reading order.
type Page struct {
    Lines []Line
}

// SpanCount returns the number of spans on the page.
func (p Page) SpanCount() int {
    n := 0
    for _, l := range p.Lines {
        n += len(l.Spans)
    }
    return n
}

// Document abstracts an opened PDF. Page indices are 0-based.
type Document interface {
    NumPage() int
    Page(i int) (Page, error)
    Close() error
}

// Opener abstracts opening a PDF path into a Document.
type Opener interface {
    Open(path string) (Document, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Document, error)

func (f OpenerFunc) Open(path string) (Document, error) { return f(path) }

// ErrNoPages is returned by ReadAll for a document that reports a negative page count.
var ErrNoPages = errors.New("document reports no pages")

// ReadAll loads every page of doc. The first page error aborts the read.
func ReadAll(ctx context.Context, doc Document) ([]Page, error) {
    n := doc.NumPage()
    if n < 0 { return nil, ErrNoPages }
    pages := make([]Page, 0, n)
    for i := 0; i < n; i++ {
        if err := ctx.Err(); err != nil { return nil, err }
        p, err := doc.Page(i)
        if err != nil {
            return nil, fmt.Errorf("read page %d: %w", i+1, err)
        }
        pages = append(pages, p)
    }
    return pages, nil
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
    base := filepath.Base(path)
    return strings.TrimSuffix(base, filepath.Ext(base))
}
