package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGatewayCountsOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveGateway("products", "insert", time.Millisecond, nil)
	m.ObserveGateway("products", "insert", time.Millisecond, errors.New("boom"))
	m.ObserveGateway("products", "insert", time.Millisecond, nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("products", "insert", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.gatewayCalls.WithLabelValues("products", "insert", "error")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveGateway("x", "select", 0, nil)
		m.ObserveCommand("addProduct", nil)
		m.ObserveRefresh("products", nil)
	})
}
