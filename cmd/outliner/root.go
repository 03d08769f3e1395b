package main

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "time"

    "github.com/rs/zerolog/log"
    "github.com/spf13/cobra"

    cfgpkg "github.com/local/outliner/internal/config"
    logpkg "github.com/local/outliner/internal/logger"
    "github.com/local/outliner/internal/metrics"
    "github.com/local/outliner/internal/pipeline"
)

var (
    cfg       cfgpkg.Config
    envFile   string
    inputDir  string
    outputDir string
    backend   string
)

var rootCmd = &cobra.Command{
    Use:   "outliner",
    Short: "Extract a title and H1-H3 outline from every PDF in a directory",
    Long: `Outliner reads each PDF of the input directory, infers the body text size from
the first pages, ranks the larger font sizes into H1, H2 and H3 and writes one
<name>.json per document with the title and the heading outline.

A document that cannot be processed is reported and skipped; exit status is 1
when any document failed and 2 when the run could not start.`,
    Version:           gitRelease,
    SilenceUsage:      true,
    SilenceErrors:     true,
    Args:              cobra.NoArgs,
    PersistentPreRunE: setup,
    RunE:              runBatch,
}

func init() {
    rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
    rootCmd.PersistentFlags().StringVar(&inputDir, "input", "", "input directory (default $INPUT_DIR or /app/input)")
    rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "output directory (default $OUTPUT_DIR or /app/output)")
    rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "text backend: mupdf or pdftext (default $PDF_BACKEND or mupdf)")

    rootCmd.AddCommand(inspectCmd, checkCmd, versionCmd)
}

// setup loads configuration, applies flag overrides and initialises logging.
func setup(cmd *cobra.Command, args []string) error {
    cfg = cfgpkg.Load(envFile)
    if cmd.Flags().Changed("input") { cfg.Paths.InputDir = inputDir }
    if cmd.Flags().Changed("output") { cfg.Paths.OutputDir = outputDir }
    if cmd.Flags().Changed("backend") { cfg.Worker.Backend = backend }

    if err := cfg.Validate(); err != nil {
        return fmt.Errorf("invalid configuration: %w", err)
    }

    return logpkg.Init(logpkg.Options{
        Service:      "outliner",
        Level:        cfg.Logging.Level,
        Pretty:       cfg.Logging.Pretty,
        File:         cfg.Logging.File,
        MaxSizeMB:    cfg.Logging.MaxSizeMB,
        MaxBackups:   cfg.Logging.MaxBackups,
        MaxAgeDays:   cfg.Logging.MaxAgeDays,
        Compress:     cfg.Logging.Compress,
        SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
        AxiomAPIKey:  cfg.Axiom.APIKey,
        AxiomOrgID:   cfg.Axiom.OrgID,
        AxiomDataset: cfg.Axiom.Dataset,
        AxiomFlush:   cfg.Axiom.FlushInterval,
    })
}

func runBatch(cmd *cobra.Command, args []string) error {
    ctx := cmd.Context()
    metrics.Init()

    stopMetrics := serveMetrics(cfg.Metrics.Addr)
    defer stopMetrics()

    opener, err := newOpener(cfg.Worker.Backend)
    if err != nil {
        return err
    }
    svc := newServices(ctx, cfg)
    defer svc.Close()

    runner, err := pipeline.New(pipeline.Options{
        InputDir:        cfg.Paths.InputDir,
        OutputDir:       cfg.Paths.OutputDir,
        Backend:         cfg.Worker.Backend,
        Heuristics:      cfg.Heuristics,
        Concurrency:     cfg.Worker.Concurrency,
        PreflightStrict: cfg.Worker.PreflightStrict,
    }, pipeline.Dependencies{
        Opener:  opener,
        Status:  svc.status,
        Mirrors: svc.mirrors,
    })
    if err != nil {
        return err
    }

    report, err := runner.Run(ctx)
    if cfg.Metrics.File != "" {
        if werr := metrics.WriteTextfile(cfg.Metrics.File); werr != nil {
            log.Warn().Err(werr).Str("file", cfg.Metrics.File).Msg("failed to write metrics file")
        }
    }

    switch {
    case errors.Is(err, context.Canceled):
        return &exitError{code: 1, err: err}
    case err != nil:
        return err
    }
    if failed := report.Failed(); len(failed) > 0 {
        return &exitError{code: 1, err: fmt.Errorf("%d of %d documents failed", len(failed), len(report.Results))}
    }
    return nil
}

// serveMetrics exposes /metrics and /health on addr for the duration of the run.
func serveMetrics(addr string) (stop func()) {
    if addr == "" {
        return func() {}
    }
    mux := http.NewServeMux()
    mux.Handle("/metrics", metrics.Handler())
    mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK); _, _ = w.Write([]byte("ok")) })
    srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

    go func() {
        log.Info().Msgf("metrics server listening on %s", addr)
        if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
            log.Error().Err(err).Msg("metrics server error")
        }
    }()

    return func() {
        ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        _ = srv.Shutdown(ctx)
    }
}
