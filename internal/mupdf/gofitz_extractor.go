// Package mupdf reads the styled text layer of PDFs through MuPDF (go-fitz).
package mupdf

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/rs/zerolog/log"

	"github.com/local/outliner/internal/document"
)

// Opener opens PDFs with go-fitz (no external tools needed)
type Opener struct{}

// NewOpener creates a new go-fitz based opener
func NewOpener() *Opener {
	return &Opener{}
}

// Open opens the PDF at path
func (o *Opener) Open(path string) (document.Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &fitzDocument{doc: doc, path: path}, nil
}

type fitzDocument struct {
	doc  *fitz.Document
	path string
}

func (d *fitzDocument) NumPage() int { return d.doc.NumPage() }

// Page renders MuPDF's structured text for page i (0-based) and parses it into lines and spans
func (d *fitzDocument) Page(i int) (document.Page, error) {
	markup, err := d.doc.HTML(i, false)
	if err != nil {
		return document.Page{}, fmt.Errorf("failed to extract text from page %d: %w", i+1, err)
	}

	page, err := ParseHTML(strings.NewReader(markup))
	if err != nil {
		return document.Page{}, fmt.Errorf("failed to parse text of page %d: %w", i+1, err)
	}

	log.Debug().
		Str("pdf", d.path).
		Int("page", i+1).
		Int("lines", len(page.Lines)).
		Int("spans", page.SpanCount()).
		Msg("Extracted page spans with go-fitz")

	return page, nil
}

func (d *fitzDocument) Close() error { return d.doc.Close() }
