// Package metrics provides Prometheus metrics for the person module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the person service counters.
type Metrics struct {
	CommandsTotal           *prometheus.CounterVec // commands by name and result
	PeopleCreatedTotal      prometheus.Counter
	PeopleMergedTotal       prometheus.Counter
	IdentifiersAddedTotal   *prometheus.CounterVec // by identifier type
	DocumentRejectionsTotal *prometheus.CounterVec // failed CPF/CNPJ checks by type
}

// Result labels for CommandsTotal.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// New creates and registers the person metrics.
func New() *Metrics {
	return &Metrics{
		CommandsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pessoas_person_commands_total",
			Help: "Person service commands by name and result",
		}, []string{"command", "result"}),

		PeopleCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pessoas_person_created_total",
			Help: "People created",
		}),

		PeopleMergedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pessoas_person_merged_total",
			Help: "People merged into another record",
		}),

		IdentifiersAddedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pessoas_person_identifiers_added_total",
			Help: "External identifiers attached, by type",
		}, []string{"type"}),

		DocumentRejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pessoas_person_document_rejections_total",
			Help: "Identifiers rejected by document checksum validation, by type",
		}, []string{"type"}),
	}
}

// RecordCommand counts one service command.
func (m *Metrics) RecordCommand(command, result string) {
	m.CommandsTotal.WithLabelValues(command, result).Inc()
}
