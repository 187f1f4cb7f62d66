package enums

import "fmt"

// OrderStatus tracks the lifecycle of a supplier order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// progressByStatus is the buyer-facing progress percentage. Derived on read,
// never stored.
var progressByStatus = map[OrderStatus]int{
	OrderStatusPending:    20,
	OrderStatusConfirmed:  40,
	OrderStatusProcessing: 60,
	OrderStatusShipped:    80,
	OrderStatusDelivered:  100,
	OrderStatusCancelled:  0,
}

// rankByStatus orders the forward statuses for aggregate "least progressed
// child" computations. Cancelled has no rank; it is excluded from minimums.
var rankByStatus = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// Progress returns the presentational completion percentage for the status.
func (s OrderStatus) Progress() int {
	return progressByStatus[s]
}

// Rank returns the forward-lifecycle position and whether the status
// participates in aggregate minimums (cancelled does not).
func (s OrderStatus) Rank() (int, bool) {
	rank, ok := rankByStatus[s]
	return rank, ok
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
