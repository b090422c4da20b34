package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin(true)
	c.RecordLogin(true)
	c.RecordLogin(false)
	c.RecordRefresh(RefreshOutcomeRotated)
	c.RecordRefresh(RefreshOutcomeNotFound)
	c.RecordAuthRejection()
	c.RecordHTTPStatus(401)

	assert.Equal(t, float64(2), testutil.ToFloat64(c.logins.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.logins.WithLabelValues("failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.refreshes.WithLabelValues(RefreshOutcomeRotated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.refreshes.WithLabelValues(RefreshOutcomeNotFound)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.authRejections))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.httpStatus.WithLabelValues("401")))
}

func TestHandler_Scrape(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin(true)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fps_logins_total")
}
