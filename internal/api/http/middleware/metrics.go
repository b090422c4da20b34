package middleware

import "net/http"

// StatusRecorder receives response status observations.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
	RecordAuthRejection()
}

// Metrics counts responses by status code and tallies 401s separately.
type Metrics struct {
	recorder StatusRecorder
}

// NewMetrics creates the metrics middleware.
func NewMetrics(recorder StatusRecorder) *Metrics {
	return &Metrics{recorder: recorder}
}

// Handler wraps next with response counting.
func (m *Metrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.recorder.RecordHTTPStatus(rec.status)
		if rec.status == http.StatusUnauthorized {
			m.recorder.RecordAuthRejection()
		}
	})
}
