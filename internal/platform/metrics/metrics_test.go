package metrics

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsDropObservations(t *testing.T) {
	var m *Metrics

	// Must not panic.
	m.AddStreamsAudited(5)
	m.IncStreamsSkipped()
	m.IncViolationsFound()
	m.IncRequests()
	m.IncRetries()
}

func TestLogSummary_ReportsEveryCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.AddStreamsAudited(7)
	m.IncViolationsFound()
	m.IncViolationsFound()
	m.IncStreamsSkipped()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	LogSummary(registry, logger)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "streamaudit_streams_audited_total")
	assert.Contains(t, out, "value=7")
	assert.Contains(t, out, "streamaudit_violations_found_total")
	assert.Contains(t, out, "value=2")
	assert.Contains(t, out, "streamaudit_streams_skipped_total")
	assert.Contains(t, out, "streamaudit_backend_requests_total")
	assert.Contains(t, out, "streamaudit_backend_retries_total")
}
