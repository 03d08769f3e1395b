package metrics

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"
)

func TestWriteTextfile(t *testing.T) {
    Init()
    Init()

    ObserveDocument("mupdf", "success", 250*time.Millisecond)
    AddPages(3)
    IncHeading("H1")
    IncFailure("read")
    IncMirror("s3://bucket", true)
    RunFinished(time.Unix(1700000000, 0))

    path := filepath.Join(t.TempDir(), "outliner.prom")
    if err := WriteTextfile(path); err != nil {
        t.Fatalf("WriteTextfile: %v", err)
    }
    b, err := os.ReadFile(path)
    if err != nil {
        t.Fatal(err)
    }
    out := string(b)
    for _, want := range []string{
        `outliner_documents_processed_total{result="success"}`,
        `outliner_headings_total{level="H1"}`,
        `outliner_document_failures_total{stage="read"}`,
        `outliner_mirror_uploads_total{mirror="s3://bucket",result="success"}`,
        `outliner_last_run_timestamp_seconds 1.7e+09`,
    } {
        if !strings.Contains(out, want) {
            t.Errorf("textfile missing %q", want)
        }
    }
}
