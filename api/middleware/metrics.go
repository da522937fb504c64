package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/partnerhub-backend/pkg/metrics"
)

// Metrics records request counts and latency labelled with the matched route pattern.
func Metrics(m *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)
			m.Observe(r.Method, routeLabel(r), rec.statusCode(), time.Since(start))
		})
	}
}
