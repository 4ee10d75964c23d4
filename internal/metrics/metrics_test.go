package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vyapkart/config"
	"vyapkart/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_ObserveOutcome(t *testing.T) {
	r := New()

	r.ObserveOutcome("firebase_login", service.OutcomeCreated)
	r.ObserveOutcome("firebase_login", service.OutcomeCreated)
	r.ObserveOutcome("login", service.OutcomeRejected)

	assert.InDelta(t, 2, testutil.ToFloat64(r.reconciliationsTotal.WithLabelValues("firebase_login", service.OutcomeCreated)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.reconciliationsTotal.WithLabelValues("login", service.OutcomeRejected)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(r.reconciliationsTotal.WithLabelValues("register", service.OutcomeLinked)), 0)
}

func TestRecorder_HandlerExposesMetrics(t *testing.T) {
	r := New()
	r.ObserveOutcome("register", service.OutcomeLinked)
	r.ObserveDuration("register", 30*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `vyapkart_reconciliations_total{entry_point="register",outcome="linked"} 1`)
	assert.Contains(t, string(body), "vyapkart_reconciliation_duration_seconds_count")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestEnabled(t *testing.T) {
	assert.False(t, Enabled(&config.Config{}))
	assert.True(t, Enabled(&config.Config{Metrics: &config.MetricsConfig{Enabled: true}}))
}
