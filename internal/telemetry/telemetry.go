package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry tracks provider call outcomes and request latency. Exposed on
// /metrics via the default prometheus registry.
type Telemetry struct {
	providerRequests *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
}

func New() *Telemetry {
	return &Telemetry{
		providerRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_requests_total",
			Help: "Calls to external providers by outcome.",
		}, []string{"provider", "outcome"}),
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "request_duration_seconds",
			Help:    "End-to-end request latency by endpoint.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// RecordProviderCall counts one provider round-trip.
func (t *Telemetry) RecordProviderCall(provider string, err error) {
	if t == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	t.providerRequests.WithLabelValues(provider, outcome).Inc()
}

// ObserveRequest records the latency of one HTTP request.
func (t *Telemetry) ObserveRequest(endpoint string, d time.Duration) {
	if t == nil {
		return
	}
	t.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}
