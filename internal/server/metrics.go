package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors recorded by the HTTP adapter.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Points   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ltictl_requests_total",
				Help: "Total number of analysis requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ltictl_request_duration_seconds",
				Help:    "Duration of analysis requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		Points: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ltictl_points_total",
				Help: "Total number of Bode or response points computed",
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(m.Requests, m.Duration, m.Points)

	return m
}
