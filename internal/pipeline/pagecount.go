package pipeline

import (
    "fmt"

    "github.com/pdfcpu/pdfcpu/pkg/api"
)

func init() {
    // keep pdfcpu from creating a config dir under $HOME
    api.DisableConfigDir()
}

// PageCounter reports the number of pages of the PDF at path.
type PageCounter interface {
    PageCount(path string) (int, error)
}

// PageCounterFunc adapts a function to PageCounter.
type PageCounterFunc func(path string) (int, error)

func (f PageCounterFunc) PageCount(path string) (int, error) { return f(path) }

// PDFCPUPageCount validates the document structure with pdfcpu and returns its page count.
func PDFCPUPageCount(path string) (n int, err error) {
    defer func() {
        if r := recover(); r != nil {
            err = fmt.Errorf("pdf page count panicked: %v", r)
        }
    }()
    n, err = api.PageCountFile(path)
    if err != nil {
        return 0, fmt.Errorf("pdf page count failed: %w", err)
    }
    return n, nil
}
