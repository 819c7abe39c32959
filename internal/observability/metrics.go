package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "border_alert"

// Metrics holds the Prometheus counters and gauges for alerting and incident updates.
type Metrics struct {
	AlertTicks       prometheus.Counter
	SyntheticAlerts  *prometheus.CounterVec // labels: severity
	AlertsMarkedRead prometheus.Counter
	ProximityQueries prometheus.Counter

	IncidentUpdates  *prometheus.CounterVec // labels: status ("" when unchanged)
	IncidentsCreated prometheus.Counter

	ActiveSessions     prometheus.Gauge
	SimulatorsRunning  prometheus.Gauge
	JournalWriteErrors prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		AlertTicks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alert_ticks_total",
			Help:      "Total simulator ticks evaluated by alert stores.",
		}),
		SyntheticAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "synthetic_alerts_total",
			Help:      "Synthetic alerts generated, by severity.",
		}, []string{"severity"}),
		AlertsMarkedRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_marked_read_total",
			Help:      "Alerts flipped from unread to read.",
		}),
		ProximityQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proximity_queries_total",
			Help:      "Proximity alert lookups.",
		}),
		IncidentUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incident_updates_total",
			Help:      "Incident updates appended, by new status.",
		}, []string{"status"}),
		IncidentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_created_total",
			Help:      "Incidents reported through the API.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Currently open officer sessions.",
		}),
		SimulatorsRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulators_running",
			Help:      "Synthetic alert schedulers currently running.",
		}),
		JournalWriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_write_errors_total",
			Help:      "Events that could not be written to the event journal.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AlertTicks,
		m.SyntheticAlerts,
		m.AlertsMarkedRead,
		m.ProximityQueries,
		m.IncidentUpdates,
		m.IncidentsCreated,
		m.ActiveSessions,
		m.SimulatorsRunning,
		m.JournalWriteErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
