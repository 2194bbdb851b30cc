package remote

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command results recorded by the hub
const (
	ResultQueued      = "queued"
	ResultAnswered    = "answered"
	ResultMalformed   = "malformed"
	ResultRateLimited = "rate_limited"
	ResultRejected    = "rejected"
)

// Metrics are the hub's Prometheus collectors
type Metrics struct {
	Clients          prometheus.Gauge
	Commands         *prometheus.CounterVec
	Broadcasts       prometheus.Counter
	DroppedSnapshots prometheus.Counter
}

// NewMetrics registers the hub collectors with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Clients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "axisrig",
			Subsystem: "remote",
			Name:      "clients",
			Help:      "Connected websocket clients.",
		}),
		Commands: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "axisrig",
			Subsystem: "remote",
			Name:      "commands_total",
			Help:      "Remote commands received, by result.",
		}, []string{"result"}),
		Broadcasts: f.NewCounter(prometheus.CounterOpts{
			Namespace: "axisrig",
			Subsystem: "remote",
			Name:      "broadcasts_total",
			Help:      "State snapshots published to clients.",
		}),
		DroppedSnapshots: f.NewCounter(prometheus.CounterOpts{
			Namespace: "axisrig",
			Subsystem: "remote",
			Name:      "dropped_snapshots_total",
			Help:      "Snapshots not delivered because a client's queue was full.",
		}),
	}
}
