// Package pipeline runs heading detection over a directory of PDFs and writes one JSON outline
// per document. A failing document is reported and skipped; it never stops the batch.
package pipeline

import (
    "context"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
    "github.com/santhosh-tekuri/jsonschema/v5"

    "github.com/local/outliner/internal/document"
    "github.com/local/outliner/internal/filetype"
    "github.com/local/outliner/internal/metrics"
    "github.com/local/outliner/internal/outline"
)

// TypeDetector checks file content before a document is opened.
type TypeDetector interface {
    IsPDF(path string) (bool, error)
}

type Options struct {
    InputDir        string
    OutputDir       string
    Backend         string
    Heuristics      outline.Heuristics
    Concurrency     int
    PreflightStrict bool
}

type Dependencies struct {
    Opener      document.Opener
    Detector    TypeDetector
    PageCounter PageCounter
    Status      StatusStore // optional
    Mirrors     []Mirror    // optional
}

type Runner struct {
    opts   Options
    deps   Dependencies
    schema *jsonschema.Schema
}

func New(opts Options, deps Dependencies) (*Runner, error) {
    if deps.Opener == nil {
        return nil, errors.New("pipeline: an opener is required")
    }
    if err := opts.Heuristics.Validate(); err != nil {
        return nil, fmt.Errorf("pipeline: %w", err)
    }
    if opts.Concurrency < 1 { opts.Concurrency = 1 }
    if deps.Detector == nil { deps.Detector = filetype.New() }
    if deps.PageCounter == nil { deps.PageCounter = PageCounterFunc(PDFCPUPageCount) }

    schema, err := CompileOutputSchema()
    if err != nil {
        return nil, err
    }
    return &Runner{opts: opts, deps: deps, schema: schema}, nil
}

// Run processes every PDF of the input directory. The error is non-nil only when the run could
// not start or was cancelled; per-document failures are in the report.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
    files, err := ListPDFs(r.opts.InputDir)
    if err != nil {
        return nil, err
    }
    if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
        return nil, fmt.Errorf("create output dir: %w", err)
    }

    report := &Report{RunID: uuid.NewString(), Results: make([]DocResult, len(files))}
    logger := log.With().Str("run_id", report.RunID).Logger()
    logger.Info().
        Str("input", r.opts.InputDir).
        Str("output", r.opts.OutputDir).
        Str("backend", r.opts.Backend).
        Int("documents", len(files)).
        Int("concurrency", r.opts.Concurrency).
        Msg("run started")

    done := make([]bool, len(files))
    jobs := make(chan int)
    var wg sync.WaitGroup
    for w := 0; w < r.opts.Concurrency; w++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            for i := range jobs {
                report.Results[i] = r.processOne(ctx, logger, report.RunID, files[i])
                done[i] = true
            }
        }()
    }

feed:
    for i := range files {
        select {
        case <-ctx.Done():
            break feed
        case jobs <- i:
        }
    }
    close(jobs)
    wg.Wait()

    for i, ok := range done {
        if !ok {
            name := filepath.Base(files[i])
            report.Results[i] = DocResult{Name: name, Err: &DocumentError{Name: name, Stage: StageCancelled, Err: ctx.Err()}}
        }
    }

    failed := report.Failed()
    for _, res := range failed {
        logger.Error().Err(res.Err).Str("file", res.Name).Msg("document failed")
    }
    metrics.RunFinished(time.Now())
    logger.Info().
        Int("documents", len(files)).
        Int("succeeded", report.Succeeded()).
        Int("failed", len(failed)).
        Msg("run finished")

    return report, ctx.Err()
}

// processOne never panics; any failure ends up in the result.
func (r *Runner) processOne(ctx context.Context, logger zerolog.Logger, runID, path string) (res DocResult) {
    name := filepath.Base(path)
    start := time.Now()
    stage := StageDetect
    res = DocResult{Name: name}

    defer func() {
        if p := recover(); p != nil {
            res.Err = fmt.Errorf("panic: %v", p)
        }
        if res.Err != nil {
            var de *DocumentError
            if !errors.As(res.Err, &de) {
                res.Err = &DocumentError{Name: name, Stage: stage, Err: res.Err}
            }
            res.Output = ""
            metrics.IncFailure(string(stage))
            if stage != StageCancelled {
                r.removeStale(logger, path)
            }
        }
        res.Duration = time.Since(start)
        metrics.ObserveDocument(r.opts.Backend, resultLabel(res.Err), res.Duration)
        r.recordStatus(ctx, logger, runID, start, res)
    }()

    if err := ctx.Err(); err != nil {
        stage = StageCancelled
        res.Err = err
        return res
    }

    ok, err := r.deps.Detector.IsPDF(path)
    if err != nil {
        res.Err = err
        return res
    }
    if !ok {
        res.Err = ErrNotPDF
        return res
    }

    stage = StagePreflight
    if n, err := r.deps.PageCounter.PageCount(path); err != nil {
        if r.opts.PreflightStrict {
            res.Err = err
            return res
        }
        logger.Warn().Err(err).Str("file", name).Msg("preflight failed; continuing with backend")
    } else {
        logger.Debug().Str("file", name).Int("page_count", n).Msg("preflight ok")
    }

    stage = StageOpen
    doc, err := r.deps.Opener.Open(path)
    if err != nil {
        res.Err = err
        return res
    }
    defer doc.Close()

    stage = StageRead
    pages, err := document.ReadAll(ctx, doc)
    if err != nil {
        if ctx.Err() != nil {
            stage = StageCancelled
        }
        res.Err = err
        return res
    }
    base, result := outline.Analyze(pages, document.Stem(path), r.opts.Heuristics)
    res.Pages, res.BodySize, res.Title, res.Entries = len(pages), base.BodySize, result.Title, len(result.Outline)
    metrics.AddPages(len(pages))

    stage = StageEncode
    data, err := Encode(result)
    if err != nil {
        res.Err = err
        return res
    }
    if err := validateOutput(r.schema, data); err != nil {
        res.Err = err
        return res
    }

    stage = StageWrite
    outName := OutputName(path)
    res.Output, err = writeAtomic(r.opts.OutputDir, outName, data)
    if err != nil {
        res.Err = err
        return res
    }

    for _, e := range result.Outline {
        metrics.IncHeading(string(e.Level))
    }
    logger.Info().
        Str("file", name).
        Int("page_count", res.Pages).
        Int("body_size", res.BodySize).
        Int("entries", res.Entries).
        Str("title", res.Title).
        Msg("document processed")

    res.Mirrored = r.publish(ctx, logger, outName, data)
    return res
}

func (r *Runner) publish(ctx context.Context, logger zerolog.Logger, outName string, data []byte) []string {
    var locations []string
    for _, m := range r.deps.Mirrors {
        loc, err := m.Publish(ctx, outName, data)
        metrics.IncMirror(m.Name(), err == nil)
        if err != nil {
            logger.Warn().Err(err).Str("mirror", m.Name()).Str("file", outName).Msg("mirror upload failed")
            continue
        }
        locations = append(locations, loc)
    }
    return locations
}

func (r *Runner) recordStatus(ctx context.Context, logger zerolog.Logger, runID string, start time.Time, res DocResult) {
    if r.deps.Status == nil {
        return
    }
    end := start.Add(res.Duration)
    st := Status{
        Document: res.Name,
        Status:   "success",
        Message:  "completed",
        Headings: res.Entries,
        Start:    &start,
        End:      &end,
        Metadata: map[string]any{"pages": res.Pages, "body_size": res.BodySize, "output": res.Output},
    }
    if len(res.Mirrored) > 0 {
        st.Metadata["mirrored"] = res.Mirrored
    }
    if res.Err != nil {
        st.Status, st.Message = "failed", res.Err.Error()
    }
    // a cancelled run still gets its statuses written
    if err := r.deps.Status.SetDocument(context.WithoutCancel(ctx), runID, st); err != nil {
        logger.Warn().Err(err).Str("file", res.Name).Msg("status update failed")
    }
}

// removeStale deletes the output of an earlier run, so a missing output always means failure.
func (r *Runner) removeStale(logger zerolog.Logger, inputPath string) {
    p := filepath.Join(r.opts.OutputDir, OutputName(inputPath))
    if err := os.Remove(p); err == nil {
        logger.Info().Str("output", p).Msg("removed stale output of failed document")
    }
}

func resultLabel(err error) string {
    if err != nil { return "failed" }
    return "success"
}
