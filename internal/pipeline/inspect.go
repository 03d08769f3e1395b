package pipeline

import (
    "context"
    "fmt"
    "strconv"

    "github.com/local/outliner/internal/document"
    "github.com/local/outliner/internal/outline"
)

// Inspection exposes the intermediate baseline next to the final result of one file.
type Inspection struct {
    File     string            `json:"file"`
    Pages    int               `json:"pages"`
    BodySize int               `json:"body_size"`
    Levels   map[string]string `json:"levels"`
    Result   outline.Result    `json:"result"`
}

// Inspect analyses a single file without writing anything.
func Inspect(ctx context.Context, opener document.Opener, path string, h outline.Heuristics) (*Inspection, error) {
    doc, err := opener.Open(path)
    if err != nil {
        return nil, err
    }
    defer doc.Close()

    pages, err := document.ReadAll(ctx, doc)
    if err != nil {
        return nil, fmt.Errorf("%s: %w", path, err)
    }
    base, res := outline.Analyze(pages, document.Stem(path), h)

    levels := make(map[string]string, len(base.Levels))
    for size, level := range base.Levels {
        levels[strconv.Itoa(size)] = string(level)
    }
    return &Inspection{File: path, Pages: len(pages), BodySize: base.BodySize, Levels: levels, Result: res}, nil
}
