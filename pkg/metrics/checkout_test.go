package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSplitCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObserveSplit(3)
	m.ObserveSplit(1)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.splits))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.childOrders))
}

func TestIncRejectNormalizesLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.IncReject("Stock Issues")
	assert.Equal(t, float64(1), testutil.ToFloat64(m.rejects.WithLabelValues("stock_issues")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var m *CheckoutMetrics
	assert.NotPanics(t, func() {
		m.ObserveSplit(2)
		m.IncReject("x")
		m.IncTransition("shipped")
	})
	empty := NewCheckoutMetrics(nil)
	assert.NotPanics(t, func() { empty.ObserveSplit(1) })
}
