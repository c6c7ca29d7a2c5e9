package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AuthEvent(t *testing.T) {
	m := New()
	m.AuthEvent("login", OutcomeSuccess)
	m.AuthEvent("login", OutcomeSuccess)
	m.AuthEvent("login", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.authEvents.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.authEvents.WithLabelValues("login", OutcomeRejected)))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/files", http.MethodGet, 200, 15*time.Millisecond)
	m.ObserveRequest("", http.MethodGet, 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/api/files", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.httpDuration))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AuthEvent("login", OutcomeError)
		m.ObserveRequest("/", "GET", 200, time.Second)
		m.BlobStored(10)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.BlobStored(1024)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "file_vault_blob_bytes_stored_total 1024")
	assert.Contains(t, string(body), "go_goroutines")
}
