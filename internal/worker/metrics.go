package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "deal_radar"

// Metrics: счётчики циклов. nil-значение допустимо и ничего не пишет.
type Metrics struct {
	cycles        *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	alerts        prometheus.Counter
	deliveries    *prometheus.CounterVec
	fetchErrors   *prometheus.CounterVec
	transitions   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cycles_total",
			Help:      "Monitoring cycles by loop and result.",
		}, []string{"loop", "result"}),
		cycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cycle_duration_seconds",
			Help:      "Monitoring cycle duration.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"loop"}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deal_alerts_total",
			Help:      "Listings alerted on.",
		}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "deliveries_total",
			Help:      "Notification deliveries by result.",
		}, []string{"result"}),
		fetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fetch_errors_total",
			Help:      "Marketplace lookups that failed.",
		}, []string{"operation"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "bid_transitions_total",
			Help:      "Bid record status transitions.",
		}, []string{"status"}),
	}

	reg.MustRegister(m.cycles, m.cycleDuration, m.alerts, m.deliveries, m.fetchErrors, m.transitions)

	return m
}

func (m *Metrics) observeCycle(loop Loop, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(string(loop), result).Inc()
	m.cycleDuration.WithLabelValues(string(loop)).Observe(d.Seconds())
}

func (m *Metrics) alerted() {
	if m == nil {
		return
	}
	m.alerts.Inc()
}

func (m *Metrics) delivered(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.deliveries.WithLabelValues(result).Inc()
}

func (m *Metrics) fetchFailed(operation string) {
	if m == nil {
		return
	}
	m.fetchErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) transitioned(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}
