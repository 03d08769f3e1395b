// Package pdftext is a pure-Go text backend built on github.com/ledongthuc/pdf. It rebuilds
// lines from positioned glyphs, for hosts where MuPDF is not available.
package pdftext

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"github.com/local/outliner/internal/document"
)

// Opener opens PDFs with ledongthuc/pdf.
type Opener struct {
	// RowTolerance is the vertical distance, in points, within which glyphs share a line.
	RowTolerance float64
}

// NewOpener returns an Opener with the default row tolerance.
func NewOpener() *Opener {
	return &Opener{RowTolerance: DefaultRowTolerance}
}

func (o *Opener) Open(path string) (document.Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &pdfDocument{file: f, reader: r, path: path, tolerance: o.RowTolerance}, nil
}

type pdfDocument struct {
	file      *os.File
	reader    *pdf.Reader
	path      string
	tolerance float64
}

func (d *pdfDocument) NumPage() int { return d.reader.NumPage() }

func (d *pdfDocument) Page(i int) (page document.Page, err error) {
	p := d.reader.Page(i + 1)
	if p.V.IsNull() {
		return document.Page{}, nil
	}

	// the content stream decoder panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to decode content of page %d: %v", i+1, r)
		}
	}()

	texts := p.Content().Text
	glyphs := make([]glyph, 0, len(texts))
	for _, t := range texts {
		glyphs = append(glyphs, glyph{Text: t.S, Font: t.Font, Size: t.FontSize, X: t.X, Y: t.Y, W: t.W})
	}
	page = buildPage(glyphs, d.tolerance)

	log.Debug().
		Str("pdf", d.path).
		Int("page", i+1).
		Int("glyphs", len(glyphs)).
		Int("lines", len(page.Lines)).
		Msg("Extracted page spans with ledongthuc/pdf")

	return page, nil
}

func (d *pdfDocument) Close() error { return d.file.Close() }
