package config

import (
    "os"
    "path/filepath"
    "strings"
    "testing"
    "time"

    "github.com/local/outliner/internal/outline"
)

func TestFromEnv_Defaults(t *testing.T) {
    for _, k := range []string{"INPUT_DIR", "OUTPUT_DIR", "WORKER_CONCURRENCY", "PDF_BACKEND", "SAMPLE_PAGES", "REDIS_URL", "OUTPUT_S3_BUCKET", "STATUS_TTL"} {
        t.Setenv(k, "")
    }
    cfg := FromEnv()

    if cfg.Paths.InputDir != "/app/input" || cfg.Paths.OutputDir != "/app/output" {
        t.Errorf("paths = %+v", cfg.Paths)
    }
    if cfg.Heuristics != outline.DefaultHeuristics() {
        t.Errorf("heuristics = %+v, want defaults", cfg.Heuristics)
    }
    if cfg.Worker.Concurrency != 1 || cfg.Worker.Backend != BackendMuPDF || cfg.Worker.PreflightStrict {
        t.Errorf("worker = %+v", cfg.Worker)
    }
    if cfg.Status.RedisURL != "" || cfg.Status.TTL != 7*24*time.Hour {
        t.Errorf("status = %+v", cfg.Status)
    }
    if err := cfg.Validate(); err != nil {
        t.Errorf("Validate: %v", err)
    }
}

func TestFromEnv_Overrides(t *testing.T) {
    t.Setenv("INPUT_DIR", "/data/in")
    t.Setenv("PDF_BACKEND", "PDFText")
    t.Setenv("WORKER_CONCURRENCY", "4")
    t.Setenv("SCORE_THRESHOLD", "7")
    t.Setenv("NUMBERED_BONUS", "not-a-number")
    t.Setenv("PREFLIGHT_STRICT", "yes")

    cfg := FromEnv()
    if cfg.Paths.InputDir != "/data/in" {
        t.Errorf("input dir = %q", cfg.Paths.InputDir)
    }
    if cfg.Worker.Backend != BackendPDFText || cfg.Worker.Concurrency != 4 || !cfg.Worker.PreflightStrict {
        t.Errorf("worker = %+v", cfg.Worker)
    }
    if cfg.Heuristics.ScoreThreshold != 7 {
        t.Errorf("score threshold = %d, want 7", cfg.Heuristics.ScoreThreshold)
    }
    if cfg.Heuristics.NumberedBonus != outline.DefaultNumberedBonus {
        t.Errorf("numbered bonus = %d, want default", cfg.Heuristics.NumberedBonus)
    }
}

func TestValidate(t *testing.T) {
    cfg := FromEnv()
    cfg.Worker.Backend = "poppler"
    cfg.Worker.Concurrency = 0
    cfg.Heuristics.SamplePages = 0

    err := cfg.Validate()
    if err == nil {
        t.Fatal("expected error")
    }
    for _, want := range []string{"poppler", "concurrency", "sample pages"} {
        if !strings.Contains(err.Error(), want) {
            t.Errorf("error %q does not mention %q", err, want)
        }
    }
}

func TestLoad_DotEnv(t *testing.T) {
    file := filepath.Join(t.TempDir(), "test.env")
    if err := os.WriteFile(file, []byte("OUTPUT_DIR=/from/dotenv\n"), 0o644); err != nil {
        t.Fatal(err)
    }
    t.Setenv("OUTPUT_DIR", "")
    os.Unsetenv("OUTPUT_DIR")

    cfg := Load(file, filepath.Join(t.TempDir(), "missing.env"))
    if cfg.Paths.OutputDir != "/from/dotenv" {
        t.Errorf("output dir = %q, want /from/dotenv", cfg.Paths.OutputDir)
    }
}
