package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type metrics struct {
	registry    *prometheus.Registry
	sessions    prometheus.Gauge
	frames      prometheus.Counter
	petalClicks *prometheus.CounterVec
}

// newMetrics uses a private registry so several servers can coexist in one
// process (tests, serve plus preview).
func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "petalsite",
			Name:      "live_sessions",
			Help:      "Open live scroll sessions.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "petalsite",
			Name:      "live_frames_total",
			Help:      "Scroll frames pushed to live sessions.",
		}),
		petalClicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "petalsite",
			Name:      "petal_clicks_total",
			Help:      "Petal redirect requests by show and outcome.",
		}, []string{"show", "result"}),
	}
	m.registry.MustRegister(
		m.sessions,
		m.frames,
		m.petalClicks,
		collectors.NewGoCollector(),
	)
	return m
}
