package trade

import (
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfilment status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pendiente"
	OrderStatusAuthorized OrderStatus = "Autorizado"
	OrderStatusPreparing  OrderStatus = "En preparación"
	OrderStatusDelivered  OrderStatus = "Entregado"
	OrderStatusCancelled  OrderStatus = "Cancelado"
)

// IsValid checks if the status is a known order status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAuthorized, OrderStatusPreparing,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsApproved reports whether the order has been authorized for invoicing
func (s OrderStatus) IsApproved() bool {
	return s == OrderStatusAuthorized
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus validates a status name
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if !status.IsValid() {
		return "", shared.NewValidationError("INVALID_ORDER_STATUS", "invalid order status: "+s)
	}
	return status, nil
}

// OrderState is the record-level state of an order
type OrderState string

const (
	OrderStateActive   OrderState = "ACTIVO"
	OrderStateInactive OrderState = "INACTIVO"
)

// OrderLine is one dish requested in an order
type OrderLine struct {
	ID        int64
	OrderID   int64
	ItemID    int64
	ItemName  string
	Quantity  int64
	UnitPrice decimal.Decimal
	// Subtotal is stored by the ordering module; older rows may lack it
	Subtotal *decimal.Decimal
	Notes    string
}

// LineSubtotal returns the stored subtotal, or quantity × unit price when
// the order line was recorded without one
func (l OrderLine) LineSubtotal() decimal.Decimal {
	if l.Subtotal != nil {
		return *l.Subtotal
	}
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

// Order is a customer order placed through the ordering module.
// Billing only reads orders and, through the status notifier, changes their status.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID      string
	DeliveryType    string
	DeliveryAddress string
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	State           OrderState
	Lines           []OrderLine
	// InvoiceID and InvoiceNumber are set when an invoice references this order
	InvoiceID     *int64
	InvoiceNumber string
}

// HasInvoice reports whether an invoice already references the order
func (o *Order) HasInvoice() bool {
	return o.InvoiceID != nil
}

// LinesSubtotal sums the line subtotals. Orders recorded without lines
// fall back to their total amount.
func (o *Order) LinesSubtotal() decimal.Decimal {
	if len(o.Lines) == 0 {
		return o.TotalAmount
	}
	sum := decimal.Zero
	for _, l := range o.Lines {
		sum = sum.Add(l.LineSubtotal())
	}
	return sum
}

// ChangeStatus moves the order to a new status. Entering Autorizado from any
// other status raises OrderApprovedEvent. Setting the current status is a no-op.
func (o *Order) ChangeStatus(status OrderStatus, now time.Time) error {
	if !status.IsValid() {
		return shared.NewValidationError("INVALID_ORDER_STATUS", "invalid order status: "+string(status))
	}
	if o.Status == status {
		return nil
	}

	previous := o.Status
	o.Status = status
	o.Touch(now)
	o.IncrementVersion()

	if status.IsApproved() {
		o.AddDomainEvent(NewOrderApprovedEvent(o, previous, now))
	}
	return nil
}
