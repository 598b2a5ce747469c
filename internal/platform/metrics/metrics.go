package metrics

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for one audit process. The process is
// one-shot, so counters are reported as a summary at run end rather than
// scraped. A nil *Metrics is valid and drops every observation, which keeps
// call sites unconditional.
type Metrics struct {
	StreamsAudited  prometheus.Counter
	StreamsSkipped  prometheus.Counter
	ViolationsFound prometheus.Counter
	RequestsTotal   prometheus.Counter
	RetriesTotal    prometheus.Counter
}

// New creates and registers all counters on reg, or on the default registerer
// when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	if reg == nil {
		factory = promauto.With(prometheus.DefaultRegisterer)
	}
	return &Metrics{
		StreamsAudited: factory.NewCounter(prometheus.CounterOpts{
			Name: "streamaudit_streams_audited_total",
			Help: "Total number of external active streams retrieved for auditing",
		}),
		StreamsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "streamaudit_streams_skipped_total",
			Help: "Total number of streams skipped as malformed",
		}),
		ViolationsFound: factory.NewCounter(prometheus.CounterOpts{
			Name: "streamaudit_violations_found_total",
			Help: "Total number of streams failing the two-internal-members rule",
		}),
		RequestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "streamaudit_backend_requests_total",
			Help: "Total number of backend API requests issued",
		}),
		RetriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "streamaudit_backend_retries_total",
			Help: "Total number of backend API request retries",
		}),
	}
}

func (m *Metrics) AddStreamsAudited(n int) {
	if m == nil {
		return
	}
	m.StreamsAudited.Add(float64(n))
}

func (m *Metrics) IncStreamsSkipped() {
	if m == nil {
		return
	}
	m.StreamsSkipped.Inc()
}

func (m *Metrics) IncViolationsFound() {
	if m == nil {
		return
	}
	m.ViolationsFound.Inc()
}

func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.RequestsTotal.Inc()
}

func (m *Metrics) IncRetries() {
	if m == nil {
		return
	}
	m.RetriesTotal.Inc()
}

// LogSummary gathers the registry and logs each counter's final value. The
// process is one-shot, so this is how the counters reach the operator.
func LogSummary(reg prometheus.Gatherer, logger *slog.Logger) {
	families, err := reg.Gather()
	if err != nil {
		logger.Warn("gather run counters", "error", err)
		return
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if counter := metric.GetCounter(); counter != nil {
				logger.Info("run counter", "name", family.GetName(), "value", counter.GetValue())
			}
		}
	}
}
