package billing

import (
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

// Event type constants for invoices
const (
	EventTypeInvoiceIssued        = "InvoiceIssued"
	EventTypeInvoiceStatusChanged = "InvoiceStatusChanged"
)

// InvoiceIssuedEvent is published after an invoice and its lines are committed
type InvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  int64       `json:"invoice_id"`
	Number     string      `json:"number"`
	CustomerID string      `json:"customer_id"`
	OrderID    *int64      `json:"order_id,omitempty"`
	Type       InvoiceType `json:"type"`
	Total      string      `json:"total"`
}

// NewInvoiceIssuedEvent creates a new InvoiceIssuedEvent
func NewInvoiceIssuedEvent(inv *Invoice) *InvoiceIssuedEvent {
	return &InvoiceIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceIssued, AggregateTypeInvoice, inv.ID, inv.IssuedAt),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		CustomerID:      inv.CustomerID,
		OrderID:         inv.OrderID,
		Type:            inv.Type,
		Total:           inv.Total.String(),
	}
}

// InvoiceStatusChangedEvent is published when an invoice is paid or voided
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID  int64         `json:"invoice_id"`
	Number     string        `json:"number"`
	FromStatus InvoiceStatus `json:"from_status"`
	ToStatus   InvoiceStatus `json:"to_status"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(inv *Invoice, from, to InvoiceStatus, now time.Time) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, AggregateTypeInvoice, inv.ID, now),
		InvoiceID:       inv.ID,
		Number:          inv.Number,
		FromStatus:      from,
		ToStatus:        to,
	}
}
