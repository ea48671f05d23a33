package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultPaymentTermDays is the number of days between issue and due date
const DefaultPaymentTermDays = 30

// AggregateTypeInvoice is the aggregate type reported by invoice events
const AggregateTypeInvoice = "Invoice"

// InvoiceLine is one item billed on an invoice
type InvoiceLine struct {
	ID        int64
	InvoiceID int64
	ItemID    int64
	// ItemName is the catalog name at the time of invoicing
	ItemName  string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Notes     string
	State     RecordState
}

// NewInvoiceLine builds a line and computes its subtotal
func NewInvoiceLine(itemID int64, itemName string, quantity int64, unitPrice decimal.Decimal, notes string) (InvoiceLine, error) {
	if itemID <= 0 {
		return InvoiceLine{}, shared.NewValidationError("INVALID_ITEM_ID", "item id must be a positive number")
	}
	subtotal, err := ComputeLineSubtotal(quantity, unitPrice)
	if err != nil {
		return InvoiceLine{}, err
	}
	return InvoiceLine{
		ItemID:    itemID,
		ItemName:  itemName,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  subtotal,
		Notes:     notes,
		State:     RecordStateActive,
	}, nil
}

// Invoice is the aggregate root for customer invoices.
// It is created only through NewDirectSaleInvoice or NewOrderInvoice and
// afterwards mutated only by ApplyUpdate and Void.
type Invoice struct {
	shared.BaseAggregateRoot
	Number      string
	CustomerID  string
	OrderID     *int64
	IssuedAt    time.Time
	DueAt       time.Time
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
	Status      InvoiceStatus
	Type        InvoiceType
	Description string
	State       RecordState
	Lines       []InvoiceLine
}

// IssueParams carries the inputs shared by both invoice constructors
type IssueParams struct {
	Number      string
	CustomerID  string
	IssuedAt    time.Time
	Totals      Totals
	Lines       []InvoiceLine
	Description string

	// PaymentTermDays overrides DefaultPaymentTermDays when positive
	PaymentTermDays int
}

// NewDirectSaleInvoice creates a VENTA invoice. Direct sales always carry lines.
func NewDirectSaleInvoice(p IssueParams) (*Invoice, error) {
	if len(p.Lines) == 0 {
		return nil, shared.NewValidationError("EMPTY_INVOICE", "a direct sale needs at least one line")
	}
	return newInvoice(InvoiceTypeSale, nil, p)
}

// NewOrderInvoice creates a PEDIDO invoice referencing the given order.
// Orders recorded without lines produce an invoice without lines.
func NewOrderInvoice(orderID int64, p IssueParams) (*Invoice, error) {
	if orderID <= 0 {
		return nil, shared.NewValidationError("INVALID_ORDER_ID", "order id must be a positive number")
	}
	id := orderID
	return newInvoice(InvoiceTypeOrder, &id, p)
}

func newInvoice(typ InvoiceType, orderID *int64, p IssueParams) (*Invoice, error) {
	if _, err := ParseInvoiceNumber(p.Number); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.CustomerID) == "" {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "customer cannot be empty")
	}
	if p.IssuedAt.IsZero() {
		return nil, shared.NewValidationError("INVALID_ISSUE_DATE", "issue date is required")
	}
	if err := checkTotals(p.Totals, p.Lines); err != nil {
		return nil, err
	}

	days := p.PaymentTermDays
	if days <= 0 {
		days = DefaultPaymentTermDays
	}

	lines := make([]InvoiceLine, len(p.Lines))
	copy(lines, p.Lines)
	for i := range lines {
		if lines[i].State == "" {
			lines[i].State = RecordStateActive
		}
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(p.IssuedAt),
		Number:            p.Number,
		CustomerID:        p.CustomerID,
		OrderID:           orderID,
		IssuedAt:          p.IssuedAt,
		DueAt:             p.IssuedAt.AddDate(0, 0, days),
		Subtotal:          p.Totals.Subtotal,
		Tax:               p.Totals.Tax,
		Total:             p.Totals.Total,
		Status:            InvoiceStatusIssued,
		Type:              typ,
		Description:       p.Description,
		State:             RecordStateActive,
		Lines:             lines,
	}, nil
}

func checkTotals(t Totals, lines []InvoiceLine) error {
	if t.Subtotal.IsNegative() || t.Tax.IsNegative() {
		return shared.NewValidationError("INVALID_AMOUNT", "invoice amounts cannot be negative")
	}
	if !t.IsConsistent() {
		return shared.NewIntegrityError("INCONSISTENT_TOTALS",
			fmt.Sprintf("total %s is not subtotal %s + tax %s", t.Total, t.Subtotal, t.Tax))
	}
	if len(lines) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal)
	}
	if !sum.Equal(t.Subtotal) {
		return shared.NewIntegrityError("INCONSISTENT_SUBTOTAL",
			fmt.Sprintf("line subtotals %s do not add up to subtotal %s", sum, t.Subtotal))
	}
	return nil
}

// IsActive reports whether the soft lifecycle flag is ACTIVO
func (i *Invoice) IsActive() bool {
	return i.State == RecordStateActive
}

// RaiseIssued records the InvoiceIssuedEvent; call once the invoice has an ID
func (i *Invoice) RaiseIssued() {
	i.AddDomainEvent(NewInvoiceIssuedEvent(i))
}

// StatusSnapshot is the audited part of an invoice mutation
type StatusSnapshot struct {
	Status      InvoiceStatus `json:"status"`
	Description string        `json:"description"`
}

// Snapshot returns the current status and description
func (i *Invoice) Snapshot() StatusSnapshot {
	return StatusSnapshot{Status: i.Status, Description: i.Description}
}

// InvoicePatch is a partial update; nil fields keep their current value
type InvoicePatch struct {
	Status      *string
	Description *string
}

// ApplyUpdate applies a partial update. The target status is validated
// against the known statuses and the transition table before anything
// changes, so a rejected patch leaves the invoice untouched.
// It reports whether any field changed.
func (i *Invoice) ApplyUpdate(patch InvoicePatch, now time.Time) (bool, error) {
	target := i.Status
	if patch.Status != nil {
		parsed, err := ParseInvoiceStatus(*patch.Status)
		if err != nil {
			return false, err
		}
		if !i.Status.CanTransitionTo(parsed) {
			return false, shared.NewValidationError("INVALID_STATUS_TRANSITION",
				fmt.Sprintf("cannot change invoice status from %s to %s", i.Status, parsed))
		}
		target = parsed
	}

	changed := false
	if patch.Description != nil && *patch.Description != i.Description {
		i.Description = *patch.Description
		changed = true
	}
	if target != i.Status {
		i.setStatus(target, now)
		changed = true
	}
	if changed {
		i.Touch(now)
		i.IncrementVersion()
	}
	return changed, nil
}

// Void marks the invoice ANULADA. Voiding twice is rejected.
func (i *Invoice) Void(now time.Time) error {
	if i.Status == InvoiceStatusVoided {
		return shared.NewValidationError("INVOICE_ALREADY_VOIDED", "invoice is already voided")
	}
	i.setStatus(InvoiceStatusVoided, now)
	i.Touch(now)
	i.IncrementVersion()
	return nil
}

func (i *Invoice) setStatus(status InvoiceStatus, now time.Time) {
	from := i.Status
	i.Status = status
	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, from, status, now))
}
