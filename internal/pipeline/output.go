package pipeline

import (
    "bytes"
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"
    "strings"

    "github.com/local/outliner/internal/document"
    "github.com/local/outliner/internal/outline"
)

// OutputName maps an input file to its output file name, "<stem>.json".
func OutputName(inputPath string) string { return document.Stem(inputPath) + ".json" }

// Encode renders a result as indented JSON. The outline is always an array.
func Encode(res outline.Result) ([]byte, error) {
    if res.Outline == nil {
        res.Outline = []outline.Entry{}
    }
    var buf bytes.Buffer
    enc := json.NewEncoder(&buf)
    enc.SetEscapeHTML(false)
    enc.SetIndent("", "    ")
    if err := enc.Encode(res); err != nil {
        return nil, fmt.Errorf("encode result: %w", err)
    }
    return buf.Bytes(), nil
}

// writeAtomic writes data to dir/name through a temp file and rename, so readers never see a
// partial file.
func writeAtomic(dir, name string, data []byte) (string, error) {
    f, err := os.CreateTemp(dir, "."+strings.TrimSuffix(name, filepath.Ext(name))+".tmp-*")
    if err != nil {
        return "", err
    }
    tmp := f.Name()
    cleanup := func() { _ = os.Remove(tmp) }

    if _, err := f.Write(data); err != nil {
        _ = f.Close()
        cleanup()
        return "", err
    }
    if err := f.Close(); err != nil {
        cleanup()
        return "", err
    }
    if err := os.Chmod(tmp, 0o644); err != nil {
        cleanup()
        return "", err
    }
    dst := filepath.Join(dir, name)
    if err := os.Rename(tmp, dst); err != nil {
        cleanup()
        return "", err
    }
    return dst, nil
}

// ListPDFs returns the PDF files directly inside dir, in lexical order.
func ListPDFs(dir string) ([]string, error) {
    entries, err := os.ReadDir(dir)
    if err != nil {
        return nil, fmt.Errorf("read input dir: %w", err)
    }
    var out []string
    for _, e := range entries {
        if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
            continue
        }
        out = append(out, filepath.Join(dir, e.Name()))
    }
    return out, nil
}
