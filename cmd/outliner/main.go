package main

import (
    "context"
    "errors"
    "fmt"
    "os"
    "os/signal"
    "syscall"

    logpkg "github.com/local/outliner/internal/logger"
)

// exitError carries a process exit code out of a command.
type exitError struct {
    code int
    err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func main() {
    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

    err := rootCmd.ExecuteContext(ctx)
    cancel()
    logpkg.Close()
    os.Exit(exitCode(err))
}

// exitCode maps a command error to the process status: 0 ok, 1 some documents failed, 2 the run
// could not be set up.
func exitCode(err error) int {
    if err == nil {
        return 0
    }
    var ee *exitError
    if errors.As(err, &ee) {
        return ee.code
    }
    fmt.Fprintln(os.Stderr, "Error:", err)
    return 2
}
