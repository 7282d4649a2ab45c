/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry
	rounds   *prometheus.CounterVec
	rejected *prometheus.CounterVec
	sessions prometheus.Gauge
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flames",
			Name:      "rounds_total",
			Help:      "Rounds played, by resulting relationship.",
		}, []string{"source", "result"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flames",
			Name:      "rejected_total",
			Help:      "Rounds refused before a result was produced, by reason.",
		}, []string{"source", "reason"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flames",
			Name:      "sessions",
			Help:      "Live websocket game sessions.",
		}),
	}

	m.registry.MustRegister(
		m.rounds,
		m.rejected,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) played(source, result string) {
	if m == nil {
		return
	}
	m.rounds.WithLabelValues(source, result).Inc()
}

func (m *Metrics) refused(source, reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(source, reason).Inc()
}

func (m *Metrics) sessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) sessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}

func registerMetricsHandler(cfg *Config, m *Metrics, mux *httprouter.Router) {
	mux.Handler("GET", cfg.prefix+"/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
