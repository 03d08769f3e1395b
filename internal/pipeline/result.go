package pipeline

import (
    "errors"
    "fmt"
    "time"
)

// ErrNotPDF is returned for input files whose content is not a PDF.
var ErrNotPDF = errors.New("not a PDF document")

// Stage names the step at which a document failed.
type Stage string

const (
    StageDetect    Stage = "detect"
    StagePreflight Stage = "preflight"
    StageOpen      Stage = "open"
    StageRead      Stage = "read"
    StageEncode    Stage = "encode"
    StageWrite     Stage = "write"
    StageCancelled Stage = "cancelled"
)

// DocumentError is the failure of a single document. The batch continues past it.
type DocumentError struct {
    Name  string
    Stage Stage
    Err   error
}

func (e *DocumentError) Error() string {
    return fmt.Sprintf("%s: %s: %v", e.Name, e.Stage, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// DocResult is the outcome of one input document.
type DocResult struct {
    Name     string
    Output   string // written file, empty on failure
    Title    string
    Entries  int
    Pages    int
    BodySize int
    Mirrored []string
    Duration time.Duration
    Err      error
}

func (r DocResult) OK() bool { return r.Err == nil }

// Report collects the results of a run in input order.
type Report struct {
    RunID   string
    Results []DocResult
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []DocResult {
    var out []DocResult
    for _, res := range r.Results {
        if res.Err != nil {
            out = append(out, res)
        }
    }
    return out
}

func (r *Report) Succeeded() int { return len(r.Results) - len(r.Failed()) }
