// Package metrics provides Prometheus metrics for duplicate detection.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the dedup service counters and histograms.
type Metrics struct {
	ChecksTotal           *prometheus.CounterVec   // duplicate checks by operation and outcome
	CandidatesScanned     prometheus.Histogram     // candidates fetched per fuzzy search
	MatchesReturned       prometheus.Histogram     // matches above threshold per fuzzy search
	CheckDurationSeconds  *prometheus.HistogramVec // duration by operation
	CreationsBlockedTotal prometheus.Counter       // creations refused because of duplicates
	SimilarOverridesTotal prometheus.Counter       // creations allowed past similar matches
}

// Outcome labels for ChecksTotal.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// New creates and registers the dedup metrics.
func New() *Metrics {
	return &Metrics{
		ChecksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pessoas_dedup_checks_total",
			Help: "Total duplicate checks by operation and outcome",
		}, []string{"operation", "outcome"}),

		CandidatesScanned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pessoas_dedup_candidates_scanned",
			Help:    "Candidates fetched from the store per fuzzy search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),

		MatchesReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pessoas_dedup_matches_returned",
			Help:    "Matches at or above threshold per fuzzy search",
			Buckets: []float64{0, 1, 2, 5, 10, 25},
		}),

		CheckDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pessoas_dedup_check_duration_seconds",
			Help:    "Duration of duplicate check operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),

		CreationsBlockedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pessoas_dedup_creations_blocked_total",
			Help: "Person creations refused because duplicates were found",
		}),

		SimilarOverridesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pessoas_dedup_similar_overrides_total",
			Help: "Person creations allowed despite similar matches",
		}),
	}
}

// RecordCheck counts one duplicate check.
func (m *Metrics) RecordCheck(operation, outcome string) {
	m.ChecksTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveSearch records candidate and match counts for one fuzzy search.
func (m *Metrics) ObserveSearch(candidates, matches int) {
	m.CandidatesScanned.Observe(float64(candidates))
	m.MatchesReturned.Observe(float64(matches))
}

// ObserveDuration records how long an operation took.
func (m *Metrics) ObserveDuration(operation string, seconds float64) {
	m.CheckDurationSeconds.WithLabelValues(operation).Observe(seconds)
}
