package document

import (
    "fmt"
    "path/filepath"
)

// Memory is a Document held entirely in memory. Useful for synthetic inputs and tests.
type Memory struct {
    Pages  []Page
    closed bool
}

func (m *Memory) NumPage() int { return len(m.Pages) }

func (m *Memory) Page(i int) (Page, error) {
    if i < 0 || i >= len(m.Pages) {
        return Page{}, fmt.Errorf("page %d out of range (document has %d pages)", i+1, len(m.Pages))
    }
    return m.Pages[i], nil
}

func (m *Memory) Close() error { m.closed = true; return nil }

// Closed reports whether Close was called.
func (m *Memory) Closed() bool { return m.closed }

// MemoryOpener serves Memory documents keyed by file base name.
type MemoryOpener map[string]*Memory

func (o MemoryOpener) Open(path string) (Document, error) {
    doc, ok := o[filepath.Base(path)]
    if !ok {
        return nil, fmt.Errorf("failed to open PDF: no document for %s", filepath.Base(path))
    }
    return doc, nil
}

// NewLine builds a line from spans.
func NewLine(spans ...Span) Line { return Line{Spans: spans} }

// NewPage builds a page from lines.
func NewPage(lines ...Line) Page { return Page{Lines: lines} }
