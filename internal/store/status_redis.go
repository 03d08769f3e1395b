package store

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    redis "github.com/redis/go-redis/v9"
)

// DocumentStatus is the per-document record of a run.
type DocumentStatus struct {
    Document string                 `json:"document"`
    Status   string                 `json:"status"`
    Message  string                 `json:"message"`
    Headings int                    `json:"headings"`
    Start    *time.Time             `json:"start_time,omitempty"`
    End      *time.Time             `json:"end_time,omitempty"`
    Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type RedisStatus struct {
    client *redis.Client
    keyNS  string
    ttl    time.Duration
}

func NewRedisStatus(redisURL string, ttl time.Duration) (*RedisStatus, error) {
    opt, err := redis.ParseURL(redisURL)
    if err != nil { return nil, err }
    c := redis.NewClient(opt)
    if err := c.Ping(context.Background()).Err(); err != nil { _ = c.Close(); return nil, err }
    return &RedisStatus{client: c, keyNS: "outliner", ttl: ttl}, nil
}

func documentKey(ns, runID, document string) string {
    return fmt.Sprintf("%s:run:%s:doc:%s", ns, runID, document)
}

func runKey(ns, runID string) string { return fmt.Sprintf("%s:run:%s:docs", ns, runID) }

// SetDocument records st under the run and adds the document to the run's index.
func (s *RedisStatus) SetDocument(ctx context.Context, runID string, st DocumentStatus) error {
    m := map[string]interface{}{
        "document": st.Document,
        "status":   st.Status,
        "message":  st.Message,
        "headings": st.Headings,
    }
    if st.Start != nil { m["start"] = st.Start.Format(time.RFC3339Nano) }
    if st.End != nil { m["end"] = st.End.Format(time.RFC3339Nano) }
    if st.Metadata != nil {
        b, _ := json.Marshal(st.Metadata)
        m["metadata"] = string(b)
    }

    key := documentKey(s.keyNS, runID, st.Document)
    pipe := s.client.TxPipeline()
    pipe.HSet(ctx, key, m)
    pipe.RPush(ctx, runKey(s.keyNS, runID), st.Document)
    if s.ttl > 0 {
        pipe.Expire(ctx, key, s.ttl)
        pipe.Expire(ctx, runKey(s.keyNS, runID), s.ttl)
    }
    _, err := pipe.Exec(ctx)
    return err
}

func (s *RedisStatus) GetDocument(ctx context.Context, runID, document string) (DocumentStatus, bool, error) {
    res, err := s.client.HGetAll(ctx, documentKey(s.keyNS, runID, document)).Result()
    if err != nil { return DocumentStatus{}, false, err }
    if len(res) == 0 { return DocumentStatus{}, false, nil }
    st := DocumentStatus{Document: res["document"], Status: res["status"], Message: res["message"]}
    if p, ok := res["headings"]; ok && p != "" {
        // ignore parse error; default 0
        var n int
        fmt.Sscan(p, &n)
        st.Headings = n
    }
    if v := res["start"]; v != "" {
        if t, err := time.Parse(time.RFC3339Nano, v); err == nil { st.Start = &t }
    }
    if v := res["end"]; v != "" {
        if t, err := time.Parse(time.RFC3339Nano, v); err == nil { st.End = &t }
    }
    if v := res["metadata"]; v != "" {
        _ = json.Unmarshal([]byte(v), &st.Metadata)
    }
    return st, true, nil
}

// RunDocuments lists the documents recorded for runID in the order they finished.
func (s *RedisStatus) RunDocuments(ctx context.Context, runID string) ([]string, error) {
    return s.client.LRange(ctx, runKey(s.keyNS, runID), 0, -1).Result()
}

func (s *RedisStatus) Ping(ctx context.Context) error { return s.client.Ping(ctx).Err() }

func (s *RedisStatus) Close() error { return s.client.Close() }
