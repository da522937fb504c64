package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TemplateMetrics records e-signature template registrations.
type TemplateMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewTemplateMetrics registers the template metrics on the provided registerer.
func NewTemplateMetrics(reg prometheus.Registerer) *TemplateMetrics {
	if reg == nil {
		return &TemplateMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "document_template_create_duration_seconds",
		Help:    "Duration of provider template registrations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"template_type"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_template_create_success_total",
		Help: "Successful template registrations.",
	}, []string{"template_type"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "document_template_create_failure_total",
		Help: "Failed template registrations.",
	}, []string{"template_type"})
	reg.MustRegister(duration, success, failure)
	return &TemplateMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records how long one registration took.
func (m *TemplateMetrics) ObserveDuration(templateType string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(templateType)).Observe(d.Seconds())
}

func (m *TemplateMetrics) IncSuccess(templateType string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(templateType)).Inc()
}

func (m *TemplateMetrics) IncFailure(templateType string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(templateType)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
