package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_Recorded(t *testing.T) {
	m := New()

	m.RecordEstimate("creative")
	m.RecordEstimate("creative")
	m.RecordSubmission("bootstrap-store-order", "sent")
	m.RecordEmail("merch-confirmation", "failed")
	m.ObserveRequest("/api/estimate", "200", 0.01)

	body := scrape(t, m)
	assert.Contains(t, body, `psx_estimates_total{kind="creative"} 2`)
	assert.Contains(t, body, `psx_submissions_total{status="sent",type="bootstrap-store-order"} 1`)
	assert.Contains(t, body, `psx_emails_total{kind="merch-confirmation",status="failed"} 1`)
	assert.Contains(t, body, `psx_http_request_duration_seconds_count{code="200",route="/api/estimate"} 1`)
}

func TestMetrics_RegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.RecordEstimate("merch")

	assert.NotContains(t, scrape(t, b), `psx_estimates_total{kind="merch"}`)
}
