package main

import (
    "context"
    "encoding/json"
    "errors"

    "github.com/spf13/cobra"

    "github.com/local/outliner/internal/statuscheck"
)

// unreachable stands in for a service that could not even be connected to.
type unreachable struct{ err error }

func (u unreachable) Ping(context.Context) error       { return u.err }
func (u unreachable) HeadBucket(context.Context) error { return u.err }

var checkCmd = &cobra.Command{
    Use:   "check",
    Short: "Report whether directories and optional services are ready, as JSON",
    Args:  cobra.NoArgs,
    RunE: func(cmd *cobra.Command, args []string) error {
        ctx := cmd.Context()
        svc := newServices(ctx, cfg)
        defer svc.Close()

        opts := statuscheck.Options{
            InputDir:  cfg.Paths.InputDir,
            OutputDir: cfg.Paths.OutputDir,
            Backend:   cfg.Worker.Backend,
        }
        switch {
        case svc.redis != nil:
            opts.Redis = svc.redis
        case cfg.Status.RedisURL != "":
            opts.Redis = unreachable{err: errors.New("connection failed")}
        }
        switch {
        case svc.s3 != nil:
            opts.S3 = svc.s3
        case cfg.Mirror.Bucket != "":
            opts.S3 = unreachable{err: errors.New("AWS configuration failed")}
        }

        sum := statuscheck.New(opts).Summary(ctx)
        enc := json.NewEncoder(cmd.OutOrStdout())
        enc.SetIndent("", "  ")
        if err := enc.Encode(sum); err != nil {
            return err
        }
        if !sum.Ready() {
            return &exitError{code: 1, err: errors.New("not ready")}
        }
        return nil
    },
}
