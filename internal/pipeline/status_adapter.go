package pipeline

import (
    "context"
    "time"

    "github.com/local/outliner/internal/store"
)

// Status is what the runner records about a document in the status store.
type Status struct {
    Document string
    Status   string
    Message  string
    Headings int
    Start    *time.Time
    End      *time.Time
    Metadata map[string]any
}

type StatusStore interface {
    SetDocument(ctx context.Context, runID string, st Status) error
}

// Mirror receives a copy of every output file.
type Mirror interface {
    Name() string
    Publish(ctx context.Context, fileName string, data []byte) (string, error)
}

type redisStatusAdapter struct{ s *store.RedisStatus }

func NewStatusAdapter(s *store.RedisStatus) StatusStore { return &redisStatusAdapter{s: s} }

func (a *redisStatusAdapter) SetDocument(ctx context.Context, runID string, st Status) error {
    return a.s.SetDocument(ctx, runID, store.DocumentStatus{
        Document: st.Document,
        Status:   st.Status,
        Message:  st.Message,
        Headings: st.Headings,
        Start:    st.Start,
        End:      st.End,
        Metadata: st.Metadata,
    })
}
