package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the lifecycle collectors. A nil *Metrics records nothing.
type Metrics struct {
	RequestsCreated *prometheus.CounterVec
	Decisions       *prometheus.CounterVec
	PollChecks      *prometheus.CounterVec
	PendingBacklog  prometheus.Gauge
	StalePending    prometheus.Gauge
	Waiters         prometheus.Gauge
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "janus_auth_requests_created_total",
				Help: "Total auth requests created.",
			},
			[]string{"kind"},
		),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "janus_auth_request_decisions_total",
				Help: "Decisions submitted, by requested status and outcome.",
			},
			[]string{"status", "result"},
		),
		PollChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "janus_poll_checks_total",
				Help: "Pending checks served to devices.",
			},
			[]string{"result"},
		),
		PendingBacklog: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "janus_pending_auth_requests",
				Help: "Auth requests currently pending.",
			},
		),
		StalePending: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "janus_pending_auth_requests_expired",
				Help: "Pending auth requests older than the pending TTL.",
			},
		),
		Waiters: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "janus_long_poll_waiters",
				Help: "Devices currently blocked in a long poll.",
			},
		),
	}

	registry.MustRegister(m.RequestsCreated, m.Decisions, m.PollChecks, m.PendingBacklog, m.StalePending, m.Waiters)
	return m
}

func (m *Metrics) requestCreated(kind string) {
	if m == nil {
		return
	}
	m.RequestsCreated.WithLabelValues(kind).Inc()
}

func (m *Metrics) decision(status, result string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(status, result).Inc()
}

func (m *Metrics) pollCheck(found bool) {
	if m == nil {
		return
	}
	result := "none"
	if found {
		result = "pending"
	}
	m.PollChecks.WithLabelValues(result).Inc()
}

func (m *Metrics) backlog(pending, stale int) {
	if m == nil {
		return
	}
	m.PendingBacklog.Set(float64(pending))
	m.StalePending.Set(float64(stale))
}

func (m *Metrics) waiterAdded() {
	if m == nil {
		return
	}
	m.Waiters.Inc()
}

func (m *Metrics) waiterDone() {
	if m == nil {
		return
	}
	m.Waiters.Dec()
}
