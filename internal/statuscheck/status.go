package statuscheck

import (
    "context"
    "errors"
    "fmt"
    "os"
    "time"
)

// RedisPinger models the minimal Redis capability we need for status checks.
type RedisPinger interface {
    Ping(ctx context.Context) error
}

// BucketHeader models the minimal S3 capability we need for status checks.
type BucketHeader interface {
    HeadBucket(ctx context.Context) error
}

// Checker aggregates readiness checks for the directories and optional services of a run.
type Checker struct {
    inputDir  string
    outputDir string
    backend   string
    redis     RedisPinger
    s3        BucketHeader
}

// Options configures the Checker. Nil Redis or S3 means the feature is disabled.
type Options struct {
    InputDir  string
    OutputDir string
    Backend   string
    Redis     RedisPinger
    S3        BucketHeader
}

// Status represents the readiness of a subsystem.
type Status struct {
    OK       bool   `json:"ok"`
    Disabled bool   `json:"disabled,omitempty"`
    Message  string `json:"message"`
}

// Summary bundles all subsystem statuses.
type Summary struct {
    Input   Status `json:"input"`
    Output  Status `json:"output"`
    Backend Status `json:"backend"`
    Redis   Status `json:"redis"`
    S3      Status `json:"s3"`
}

// Ready reports whether a batch run can start. Disabled services do not count against it.
func (s Summary) Ready() bool {
    for _, st := range []Status{s.Input, s.Output, s.Backend, s.Redis, s.S3} {
        if !st.OK && !st.Disabled {
            return false
        }
    }
    return true
}

// New creates a new Checker with the provided options.
func New(opts Options) *Checker {
    return &Checker{
        inputDir:  opts.InputDir,
        outputDir: opts.OutputDir,
        backend:   opts.Backend,
        redis:     opts.Redis,
        s3:        opts.S3,
    }
}

// Summary returns the current status snapshot.
func (c *Checker) Summary(ctx context.Context) Summary {
    return Summary{
        Input:   c.checkInput(),
        Output:  c.checkOutput(),
        Backend: Status{OK: c.backend != "", Message: backendMessage(c.backend)},
        Redis:   c.checkRedis(ctx),
        S3:      c.checkS3(ctx),
    }
}

func backendMessage(name string) string {
    if name == "" {
        return "not configured"
    }
    return name
}

func (c *Checker) checkInput() Status {
    entries, err := os.ReadDir(c.inputDir)
    if err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    return Status{OK: true, Message: fmt.Sprintf("%d entries", len(entries))}
}

func (c *Checker) checkOutput() Status {
    if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    f, err := os.CreateTemp(c.outputDir, ".outliner-check-*")
    if err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    name := f.Name()
    _ = f.Close()
    _ = os.Remove(name)
    return Status{OK: true, Message: "Writable"}
}

func (c *Checker) checkRedis(ctx context.Context) Status {
    if c.redis == nil {
        return Status{Disabled: true, Message: "REDIS_URL not set"}
    }
    ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
    defer cancel()
    if err := c.redis.Ping(ctx); err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    return Status{OK: true, Message: "Connected"}
}

func (c *Checker) checkS3(ctx context.Context) Status {
    if c.s3 == nil {
        return Status{Disabled: true, Message: "Bucket not configured"}
    }
    ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
    defer cancel()
    if err := c.s3.HeadBucket(ctx); err != nil {
        return Status{OK: false, Message: trimError(err)}
    }
    return Status{OK: true, Message: "Connected"}
}

func trimError(err error) string {
    if err == nil {
        return ""
    }
    var netErr interface{ Timeout() bool }
    if errors.As(err, &netErr) && netErr.Timeout() {
        return "timeout"
    }
    msg := err.Error()
    if len(msg) > 120 {
        return msg[:120]
    }
    return msg
}
