package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_vault_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "music_vault_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Document store metrics
var (
	StoreSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_vault_store_saves_total",
			Help: "Total number of document store save operations",
		},
		[]string{"store", "status"},
	)

	StoreSaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "music_vault_store_save_duration_seconds",
			Help:    "Document store save duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"store"},
	)
)

// Cover image pipeline metrics
var (
	CoversProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_vault_covers_processed_total",
			Help: "Total number of cover images normalized",
		},
		[]string{"status"},
	)

	CoverProcessDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "music_vault_cover_process_duration_seconds",
			Help:    "Cover image normalization duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Audio probe metrics
var (
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_vault_audio_probes_total",
			Help: "Total number of audio duration probes",
		},
		[]string{"container", "status"},
	)
)

// ObserveStoreSave records one document store save.
func ObserveStoreSave(store string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	StoreSavesTotal.WithLabelValues(store, status).Inc()
	if err == nil {
		StoreSaveDuration.WithLabelValues(store).Observe(d.Seconds())
	}
}

// ObserveCoverProcessed records one cover normalization attempt.
func ObserveCoverProcessed(d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CoversProcessedTotal.WithLabelValues(status).Inc()
	if err == nil {
		CoverProcessDuration.Observe(d.Seconds())
	}
}

// ObserveProbe records one audio duration probe for a container format.
func ObserveProbe(container string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	ProbesTotal.WithLabelValues(container, status).Inc()
}
