package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return string(body)
}

func TestObserveUpstream(t *testing.T) {
	ObserveUpstream(404, 12)
	ObserveUpstream(0, 3)

	out := scrape(t)
	assert.Contains(t, out, `shodan_inspector_upstream_status_total{code="404"}`)
	assert.Contains(t, out, `shodan_inspector_upstream_status_total{code="transport_error"}`)
	assert.Contains(t, out, "shodan_inspector_upstream_duration_ms_count")
}

func TestHandlerExposesRelayCounters(t *testing.T) {
	RelayRequestsTotal.WithLabelValues(OutcomeOK).Inc()
	assert.Contains(t, scrape(t), `shodan_inspector_relay_requests_total{outcome="ok"}`)
}
