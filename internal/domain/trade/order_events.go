package trade

import (
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

// Event type constants for orders
const (
	EventTypeOrderApproved = "OrderApproved"
)

// AggregateTypeOrder is the aggregate type reported by order events
const AggregateTypeOrder = "Order"

// OrderApprovedEvent is raised when an order enters the authorized status.
// Billing consumes it to derive the order's invoice.
type OrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID        int64       `json:"order_id"`
	CustomerID     string      `json:"customer_id"`
	PreviousStatus OrderStatus `json:"previous_status"`
	TotalAmount    string      `json:"total_amount"`
}

// NewOrderApprovedEvent creates a new OrderApprovedEvent
func NewOrderApprovedEvent(o *Order, previous OrderStatus, now time.Time) *OrderApprovedEvent {
	return &OrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderApproved, AggregateTypeOrder, o.ID, now),
		OrderID:         o.ID,
		CustomerID:      o.CustomerID,
		PreviousStatus:  previous,
		TotalAmount:     o.TotalAmount.String(),
	}
}
