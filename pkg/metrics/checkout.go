package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records counters for the order-splitting pipeline.
type CheckoutMetrics struct {
	splits      prometheus.Counter
	childOrders prometheus.Counter
	rejects     *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

// NewCheckoutMetrics registers checkout metrics on the provided registerer.
// A nil registerer yields a no-op recorder, which tests rely on.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	splits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_splits_total",
		Help: "Checkouts successfully split into supplier orders.",
	})
	childOrders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_supplier_orders_total",
		Help: "Supplier orders created by checkout splits.",
	})
	rejects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejects_total",
		Help: "Checkouts rejected before any order was created.",
	}, []string{"reason"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Supplier order status transitions applied.",
	}, []string{"to"})
	reg.MustRegister(splits, childOrders, rejects, transitions)
	return &CheckoutMetrics{
		splits:      splits,
		childOrders: childOrders,
		rejects:     rejects,
		transitions: transitions,
	}
}

// ObserveSplit records one successful checkout split with its child count.
func (m *CheckoutMetrics) ObserveSplit(children int) {
	if m == nil || m.splits == nil {
		return
	}
	m.splits.Inc()
	m.childOrders.Add(float64(children))
}

// IncReject records a rejected checkout by reason.
func (m *CheckoutMetrics) IncReject(reason string) {
	if m == nil || m.rejects == nil {
		return
	}
	m.rejects.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncTransition records an applied status transition.
func (m *CheckoutMetrics) IncTransition(to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(to)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return strings.ReplaceAll(value, " ", "_")
}
