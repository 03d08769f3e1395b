package config

import (
    "errors"
    "fmt"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"

    "github.com/local/outliner/internal/outline"
)

// LoggingConfig holds logging-related configuration.
type LoggingConfig struct {
    Level        string
    Pretty       bool
    File         string
    MaxSizeMB    int
    MaxBackups   int
    MaxAgeDays   int
    Compress     bool
}

// AxiomConfig holds Axiom logging configuration.
type AxiomConfig struct {
    Send          bool
    APIKey        string
    OrgID         string
    Dataset       string
    FlushInterval time.Duration
}

// PathsConfig holds the batch input and output directories.
type PathsConfig struct {
    InputDir  string
    OutputDir string
}

// WorkerConfig defines how documents are processed.
type WorkerConfig struct {
    Concurrency     int
    Backend         string // "mupdf"|"pdftext"
    PreflightStrict bool
}

// MetricsConfig defines where run metrics go.
type MetricsConfig struct {
    Addr string
    File string
}

// StatusConfig defines the optional Redis status store.
type StatusConfig struct {
    RedisURL string
    TTL      time.Duration
}

// MirrorConfig defines the optional S3 mirror of output files.
type MirrorConfig struct {
    Bucket    string
    Prefix    string
    Password  string
    Region    string
    Endpoint  string
    AccessKey string
    SecretKey string
}

// Config is the top-level configuration.
type Config struct {
    Logging    LoggingConfig
    Axiom      AxiomConfig
    Paths      PathsConfig
    Heuristics outline.Heuristics
    Worker     WorkerConfig
    Metrics    MetricsConfig
    Status     StatusConfig
    Mirror     MirrorConfig
}

const (
    BackendMuPDF   = "mupdf"
    BackendPDFText = "pdftext"
)

// Load reads .env files (missing files are ignored) and then the environment.
func Load(files ...string) Config {
    if len(files) == 0 {
        files = []string{".env"}
    }
    for _, f := range files {
        if _, err := os.Stat(f); err == nil {
            _ = godotenv.Load(f)
        }
    }
    return FromEnv()
}

// FromEnv loads configuration from environment with sensible defaults.
func FromEnv() Config {
    cfg := Config{}

    // Logging defaults
    cfg.Logging = LoggingConfig{
        Level:      getEnv("LOG_LEVEL", "info"),
        Pretty:     parseBool(getEnv("LOG_PRETTY", devDefaultPretty())),
        File:       getEnv("LOG_FILE", ""),
        MaxSizeMB:  parseInt(getEnv("LOG_MAX_SIZE_MB", "100"), 100),
        MaxBackups: parseInt(getEnv("LOG_MAX_BACKUPS", "10"), 10),
        MaxAgeDays: parseInt(getEnv("LOG_MAX_AGE_DAYS", "30"), 30),
        Compress:   parseBool(getEnv("LOG_COMPRESS", "true")),
    }

    // Axiom defaults
    baseDataset := getEnv("AXIOM_DATASET", "dev")
    cfg.Axiom = AxiomConfig{
        Send:          parseBool(getEnv("SEND_LOGS_TO_AXIOM", "0")),
        APIKey:        getEnv("AXIOM_API_KEY", ""),
        OrgID:         getEnv("AXIOM_ORG_ID", ""),
        Dataset:       baseDataset + "_outliner",
        FlushInterval: parseDuration(getEnv("AXIOM_FLUSH_INTERVAL", "10s"), 10*time.Second),
    }

    cfg.Paths = PathsConfig{
        InputDir:  getEnv("INPUT_DIR", "/app/input"),
        OutputDir: getEnv("OUTPUT_DIR", "/app/output"),
    }

    h := outline.DefaultHeuristics()
    cfg.Heuristics = outline.Heuristics{
        SamplePages:      parseInt(getEnv("SAMPLE_PAGES", ""), h.SamplePages),
        SizeBuffer:       parseInt(getEnv("SIZE_BUFFER", ""), h.SizeBuffer),
        ScoreThreshold:   parseInt(getEnv("SCORE_THRESHOLD", ""), h.ScoreThreshold),
        MaxHeadingLength: parseInt(getEnv("MAX_HEADING_LENGTH", ""), h.MaxHeadingLength),
        BoldBonus:        parseInt(getEnv("BOLD_BONUS", ""), h.BoldBonus),
        NumberedBonus:    parseInt(getEnv("NUMBERED_BONUS", ""), h.NumberedBonus),
    }

    cfg.Worker = WorkerConfig{
        Concurrency:     parseInt(getEnv("WORKER_CONCURRENCY", "1"), 1),
        Backend:         strings.ToLower(getEnv("PDF_BACKEND", BackendMuPDF)),
        PreflightStrict: parseBool(getEnv("PREFLIGHT_STRICT", "false")),
    }

    cfg.Metrics = MetricsConfig{
        Addr: getEnv("METRICS_ADDR", ""),
        File: getEnv("METRICS_FILE", ""),
    }

    cfg.Status = StatusConfig{
        RedisURL: getEnv("REDIS_URL", ""),
        TTL:      parseDuration(getEnv("STATUS_TTL", "168h"), 7*24*time.Hour),
    }

    cfg.Mirror = MirrorConfig{
        Bucket:    getEnv("OUTPUT_S3_BUCKET", ""),
        Prefix:    getEnv("OUTPUT_S3_PREFIX", "outlines"),
        Password:  getEnv("OUTPUT_S3_PASSWORD", ""),
        Region:    getEnv("AWS_REGION", ""),
        Endpoint:  getEnv("OUTPUT_S3_ENDPOINT", ""),
        AccessKey: getEnv("OUTPUT_S3_ACCESS_KEY", ""),
        SecretKey: getEnv("OUTPUT_S3_SECRET_KEY", ""),
    }

    return cfg
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
    var errs []error
    if c.Paths.InputDir == "" {
        errs = append(errs, errors.New("input directory is required"))
    }
    if c.Paths.OutputDir == "" {
        errs = append(errs, errors.New("output directory is required"))
    }
    if c.Worker.Concurrency < 1 {
        errs = append(errs, fmt.Errorf("worker concurrency must be at least 1, got %d", c.Worker.Concurrency))
    }
    switch c.Worker.Backend {
    case BackendMuPDF, BackendPDFText:
    default:
        errs = append(errs, fmt.Errorf("unknown PDF backend %q (want %s or %s)", c.Worker.Backend, BackendMuPDF, BackendPDFText))
    }
    if (c.Mirror.AccessKey == "") != (c.Mirror.SecretKey == "") {
        errs = append(errs, errors.New("OUTPUT_S3_ACCESS_KEY and OUTPUT_S3_SECRET_KEY must be set together"))
    }
    if err := c.Heuristics.Validate(); err != nil {
        errs = append(errs, err)
    }
    return errors.Join(errs...)
}

// Helpers
func getEnv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func parseInt(s string, def int) int {
    if s == "" { return def }
    if n, err := strconv.Atoi(s); err == nil { return n }
    return def
}

func parseBool(s string) bool {
    v := strings.ToLower(strings.TrimSpace(s))
    return v == "1" || v == "true" || v == "yes" || v == "on"
}

func parseDuration(s string, def time.Duration) time.Duration {
    if s == "" { return def }
    if d, err := time.ParseDuration(s); err == nil { return d }
    return def
}

func devDefaultPretty() string {
    env := strings.ToLower(os.Getenv("ENVIRONMENT"))
    if env == "dev" || env == "development" || env == "local" { return "true" }
    return "false"
}
