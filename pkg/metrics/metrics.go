package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the submission workflow.
type Metrics struct {
	RecordSubmissions      *prometheus.CounterVec
	EvidenceFilesUploaded  prometheus.Counter
	EvidenceUploadDuration prometheus.Histogram
}

var (
	defaultMetrics *Metrics
	metricsOnce    sync.Once
)

// Default returns the process-wide Metrics, registering the collectors on
// first use. promauto registration panics on duplicates, hence the Once.
func Default() *Metrics {
	metricsOnce.Do(func() {
		defaultMetrics = &Metrics{
			RecordSubmissions: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "compliance_record_submissions_total",
				Help: "Total number of compliance record submissions by outcome",
			}, []string{"outcome"}),
			EvidenceFilesUploaded: promauto.NewCounter(prometheus.CounterOpts{
				Name: "compliance_evidence_files_uploaded_total",
				Help: "Total number of evidence files uploaded to storage",
			}),
			EvidenceUploadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "compliance_evidence_upload_duration_seconds",
				Help:    "Duration of the per-submission evidence upload pipeline",
				Buckets: prometheus.DefBuckets,
			}),
		}
	})
	return defaultMetrics
}

// RecordSubmission counts one submission outcome. Nil-safe so services can
// run without metrics in tests.
func (m *Metrics) RecordSubmission(outcome string) {
	if m == nil {
		return
	}
	m.RecordSubmissions.WithLabelValues(outcome).Inc()
}

// AddUploadedFiles counts successfully uploaded evidence files.
func (m *Metrics) AddUploadedFiles(n int) {
	if m == nil {
		return
	}
	m.EvidenceFilesUploaded.Add(float64(n))
}

// ObserveUploadDuration records one upload-pipeline duration in seconds.
func (m *Metrics) ObserveUploadDuration(seconds float64) {
	if m == nil {
		return
	}
	m.EvidenceUploadDuration.Observe(seconds)
}
