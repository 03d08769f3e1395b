package main

import (
    "fmt"
    "runtime"

    "github.com/spf13/cobra"
)

// set with -ldflags "-X main.gitRelease=... -X main.gitCommit=..."
var (
    gitRelease = "dev"
    gitCommit  = "unknown"
)

var versionCmd = &cobra.Command{
    Use:   "version",
    Short: "Print version information",
    // no configuration needed
    PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
    Run: func(cmd *cobra.Command, args []string) {
        fmt.Fprintf(cmd.OutOrStdout(), "outliner %s\n", gitRelease)
        fmt.Fprintf(cmd.OutOrStdout(), "  Go:     %s\n", runtime.Version())
        fmt.Fprintf(cmd.OutOrStdout(), "  Commit: %s\n", gitCommit)
    },
}
