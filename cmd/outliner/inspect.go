package main

import (
    "encoding/json"

    "github.com/spf13/cobra"

    "github.com/local/outliner/internal/pipeline"
)

var inspectCmd = &cobra.Command{
    Use:   "inspect <file.pdf>",
    Short: "Print the body size, level map and outline of one PDF without writing anything",
    Args:  cobra.ExactArgs(1),
    RunE: func(cmd *cobra.Command, args []string) error {
        opener, err := newOpener(cfg.Worker.Backend)
        if err != nil {
            return err
        }
        insp, err := pipeline.Inspect(cmd.Context(), opener, args[0], cfg.Heuristics)
        if err != nil {
            return &exitError{code: 1, err: err}
        }
        enc := json.NewEncoder(cmd.OutOrStdout())
        enc.SetEscapeHTML(false)
        enc.SetIndent("", "    ")
        return enc.Encode(insp)
    },
}
