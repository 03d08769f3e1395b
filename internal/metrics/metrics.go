package metrics

import (
    "net/http"
    "sync"
    "time"

    "github.com/prometheus/client_golang/prometheus"
    "github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
    registry = prometheus.NewRegistry()
    initOnce sync.Once

    documentsProcessed = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "outliner",
            Name:      "documents_processed_total",
            Help:      "Total documents processed by result (success, failed)",
        },
        []string{"result"},
    )

    documentDuration = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "outliner",
            Name:      "document_duration_seconds",
            Help:      "Duration of document processing by backend",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"backend"},
    )

    pagesRead = prometheus.NewCounter(
        prometheus.CounterOpts{
            Namespace: "outliner",
            Name:      "pages_read_total",
            Help:      "Total pages read from input documents",
        },
    )

    headingsFound = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "outliner",
            Name:      "headings_total",
            Help:      "Headings emitted by level",
        },
        []string{"level"},
    )

    failures = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "outliner",
            Name:      "document_failures_total",
            Help:      "Document failures by stage",
        },
        []string{"stage"},
    )

    mirrorUploads = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "outliner",
            Name:      "mirror_uploads_total",
            Help:      "Output mirror uploads by mirror and result",
        },
        []string{"mirror", "result"},
    )

    lastRun = prometheus.NewGauge(
        prometheus.GaugeOpts{
            Namespace: "outliner",
            Name:      "last_run_timestamp_seconds",
            Help:      "Unix time at which the last run finished",
        },
    )
)

// Init registers collectors. Safe to call more than once.
func Init() {
    initOnce.Do(func() {
        registry.MustRegister(documentsProcessed, documentDuration, pagesRead, headingsFound, failures, mirrorUploads, lastRun)
    })
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}) }

// WriteTextfile dumps the current values in the text exposition format, for node_exporter's textfile collector.
func WriteTextfile(path string) error { return prometheus.WriteToTextfile(path, registry) }

func ObserveDocument(backend, result string, dur time.Duration) {
    documentsProcessed.WithLabelValues(result).Inc()
    documentDuration.WithLabelValues(backend).Observe(dur.Seconds())
}

func AddPages(n int)              { pagesRead.Add(float64(n)) }
func IncHeading(level string)     { headingsFound.WithLabelValues(level).Inc() }
func IncFailure(stage string)     { failures.WithLabelValues(stage).Inc() }
func RunFinished(at time.Time)    { lastRun.Set(float64(at.Unix())) }

func IncMirror(mirror string, ok bool) {
    mirrorUploads.WithLabelValues(mirror, resultLabel(ok)).Inc()
}

func resultLabel(ok bool) string { if ok { return "success" }; return "failed" }
