package main

import (
    "context"
    "fmt"

    "github.com/rs/zerolog/log"

    cfgpkg "github.com/local/outliner/internal/config"
    "github.com/local/outliner/internal/document"
    "github.com/local/outliner/internal/mupdf"
    "github.com/local/outliner/internal/pdftext"
    "github.com/local/outliner/internal/pipeline"
    "github.com/local/outliner/internal/storage"
    "github.com/local/outliner/internal/store"
)

func newOpener(backend string) (document.Opener, error) {
    switch backend {
    case cfgpkg.BackendMuPDF:
        return mupdf.NewOpener(), nil
    case cfgpkg.BackendPDFText:
        return pdftext.NewOpener(), nil
    }
    return nil, fmt.Errorf("unknown PDF backend %q", backend)
}

// services holds the optional status store and output mirrors of a run.
type services struct {
    redis   *store.RedisStatus
    s3      *storage.S3Mirror
    status  pipeline.StatusStore
    mirrors []pipeline.Mirror
}

// newServices connects the optional services. One that cannot be reached is logged and left out;
// it never stops the run.
func newServices(ctx context.Context, cfg cfgpkg.Config) *services {
    svc := &services{}

    if cfg.Status.RedisURL != "" {
        rs, err := store.NewRedisStatus(cfg.Status.RedisURL, cfg.Status.TTL)
        if err != nil {
            log.Warn().Err(err).Msg("redis status store unavailable; statuses will not be recorded")
        } else {
            svc.redis = rs
            svc.status = pipeline.NewStatusAdapter(rs)
        }
    }

    if cfg.Mirror.Bucket != "" {
        m, err := storage.NewS3Mirror(ctx, storage.S3Options{
            Bucket:    cfg.Mirror.Bucket,
            Prefix:    cfg.Mirror.Prefix,
            Password:  cfg.Mirror.Password,
            Region:    cfg.Mirror.Region,
            Endpoint:  cfg.Mirror.Endpoint,
            AccessKey: cfg.Mirror.AccessKey,
            SecretKey: cfg.Mirror.SecretKey,
        })
        if err != nil {
            log.Warn().Err(err).Str("bucket", cfg.Mirror.Bucket).Msg("s3 mirror unavailable; outputs stay local")
        } else {
            svc.s3 = m
            svc.mirrors = append(svc.mirrors, m)
        }
    }
    return svc
}

func (s *services) Close() {
    if s.redis != nil {
        _ = s.redis.Close()
    }
}
