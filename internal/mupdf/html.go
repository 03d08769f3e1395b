package mupdf

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/local/outliner/internal/document"
)

// ParseHTML converts MuPDF's structured-text HTML into lines and spans.
//
// MuPDF emits one <p> per text line and one <span> per style run; bold and italic faces are
// signalled by enclosing <b> and <i> elements and are folded back into the font name
// ("Times-Bold", "Times-BoldItalic") so that callers only need to inspect Span.Font.
func ParseHTML(r io.Reader) (document.Page, error) {
	var (
		page   document.Page
		line   *document.Line
		span   *document.Span
		bold   int
		italic int
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if line != nil {
					page.Lines = append(page.Lines, *line)
				}
				return page, nil
			}
			return document.Page{}, z.Err()

		case html.StartTagToken:
			tok := z.Token()
			switch tok.Data {
			case "p":
				if line != nil {
					page.Lines = append(page.Lines, *line)
				}
				line = &document.Line{}
			case "b":
				bold++
			case "i":
				italic++
			case "span":
				if line == nil {
					continue
				}
				family, size := spanStyle(attr(tok, "style"))
				span = &document.Span{Size: size, Font: fontName(family, bold > 0, italic > 0)}
			}

		case html.EndTagToken:
			tok := z.Token()
			switch tok.Data {
			case "p":
				if line != nil {
					page.Lines = append(page.Lines, *line)
					line = nil
				}
			case "b":
				if bold > 0 {
					bold--
				}
			case "i":
				if italic > 0 {
					italic--
				}
			case "span":
				if line != nil && span != nil {
					line.Spans = append(line.Spans, *span)
				}
				span = nil
			}

		case html.TextToken:
			if span != nil {
				span.Text += string(z.Text())
			}
		}
	}
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// spanStyle pulls the font family and point size out of an inline style such as
// "font-family:Times,serif;font-size:12.0pt;color:#ff0000".
func spanStyle(style string) (family string, size float64) {
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "font-family":
			family, _, _ = strings.Cut(val, ",")
			family = strings.Trim(strings.TrimSpace(family), `'"`)
		case "font-size":
			if v, err := strconv.ParseFloat(strings.TrimSuffix(val, "pt"), 64); err == nil {
				size = v
			}
		}
	}
	return family, size
}

func fontName(family string, bold, italic bool) string {
	switch {
	case bold && italic:
		return family + "-BoldItalic"
	case bold:
		return family + "-Bold"
	case italic:
		return family + "-Italic"
	}
	return family
}
