package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds the gateway and store instruments. A nil *Metrics records nothing.
type Metrics struct {
	gatewayCalls   *prometheus.CounterVec
	gatewayLatency *prometheus.HistogramVec
	commands       *prometheus.CounterVec
	refreshes      *prometheus.CounterVec
}

// New registers the instruments on registerer (prometheus.DefaultRegisterer when nil).
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		gatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoparts_gateway_calls_total",
			Help: "Gateway calls by table, operation and outcome.",
		}, []string{"table", "op", "outcome"}),
		gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "autoparts_gateway_call_duration_seconds",
			Help:    "Gateway call latency by table and operation.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"table", "op"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoparts_store_commands_total",
			Help: "Store commands by name and outcome.",
		}, []string{"command", "outcome"}),
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "autoparts_store_refresh_collections_total",
			Help: "Collections applied or skipped during refresh.",
		}, []string{"collection", "outcome"}),
	}

	registerer.MustRegister(m.gatewayCalls, m.gatewayLatency, m.commands, m.refreshes)
	return m
}

func (m *Metrics) ObserveGateway(table, op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.gatewayCalls.WithLabelValues(table, op, outcome(err)).Inc()
	m.gatewayLatency.WithLabelValues(table, op).Observe(d.Seconds())
}

func (m *Metrics) ObserveCommand(command string, err error) {
	if m == nil {
		return
	}
	m.commands.WithLabelValues(command, outcome(err)).Inc()
}

func (m *Metrics) ObserveRefresh(collection string, err error) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(collection, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}
