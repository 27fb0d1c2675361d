package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for ledger transitions and the read
// model.
type Metrics struct {
	GrantsTotal      *prometheus.CounterVec
	RevocationsTotal prometheus.Counter
	RequestsTotal    prometheus.Counter
	ResponsesTotal   *prometheus.CounterVec
	RejectionsTotal  *prometheus.CounterVec
	BatchSize        prometheus.Histogram

	RebuildLatency prometheus.Histogram
	EntriesFolded  prometheus.Counter
}

// New registers and returns ledger metrics collectors.
func New() *Metrics {
	return &Metrics{
		GrantsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthchains_grants_total",
			Help: "Total number of consents granted, labeled by data category",
		}, []string{"data_category"}),
		RevocationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthchains_revocations_total",
			Help: "Total number of consents revoked",
		}),
		RequestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthchains_access_requests_total",
			Help: "Total number of access requests created",
		}),
		ResponsesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthchains_access_responses_total",
			Help: "Total number of responded access requests, labeled by outcome",
		}, []string{"outcome"}),
		RejectionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "healthchains_rejected_transitions_total",
			Help: "Total number of rejected transitions, labeled by error code",
		}, []string{"code"}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthchains_grant_batch_size",
			Help:    "Distribution of accepted grant batch sizes",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 200},
		}),
		RebuildLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "healthchains_readmodel_rebuild_latency_seconds",
			Help:    "Latency of read model rebuilds from the event log",
			Buckets: prometheus.DefBuckets,
		}),
		EntriesFolded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "healthchains_readmodel_entries_folded_total",
			Help: "Total number of log entries folded by the read model",
		}),
	}
}

func (m *Metrics) IncrementGrants(dataCategory string) {
	m.GrantsTotal.WithLabelValues(dataCategory).Inc()
}

func (m *Metrics) IncrementRevocations() {
	m.RevocationsTotal.Inc()
}

func (m *Metrics) IncrementRequests() {
	m.RequestsTotal.Inc()
}

func (m *Metrics) IncrementResponses(outcome string) {
	m.ResponsesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementRejections(code string) {
	m.RejectionsTotal.WithLabelValues(code).Inc()
}

func (m *Metrics) ObserveBatchSize(n int) {
	m.BatchSize.Observe(float64(n))
}

func (m *Metrics) ObserveRebuildLatency(seconds float64) {
	m.RebuildLatency.Observe(seconds)
}

func (m *Metrics) AddEntriesFolded(n int) {
	m.EntriesFolded.Add(float64(n))
}
