package billing

import (
	"strings"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

// InvoiceStatus represents the business status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusIssued InvoiceStatus = "EMITIDA"
	InvoiceStatusPaid   InvoiceStatus = "PAGADA"
	InvoiceStatusVoided InvoiceStatus = "ANULADA"
)

// AllInvoiceStatuses returns every valid invoice status
func AllInvoiceStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusVoided}
}

// IsValid checks if the status is valid
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusIssued, InvoiceStatusPaid, InvoiceStatusVoided:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusVoided
}

// String returns the string representation
func (s InvoiceStatus) String() string {
	return string(s)
}

// ParseInvoiceStatus validates a status name; matching is exact
func ParseInvoiceStatus(s string) (InvoiceStatus, error) {
	status := InvoiceStatus(strings.TrimSpace(s))
	if !status.IsValid() {
		return "", shared.NewValidationError("INVALID_INVOICE_STATUS",
			"invalid invoice status: "+s+" (expected EMITIDA, PAGADA or ANULADA)")
	}
	return status, nil
}

// CanTransitionTo reports whether an invoice in status s may move to target.
// Requesting the current status is accepted as a no-op.
//
//	EMITIDA -> PAGADA, ANULADA
//	PAGADA  -> ANULADA
//	ANULADA -> (none)
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if !target.IsValid() {
		return false
	}
	if s == target {
		return true
	}
	switch s {
	case InvoiceStatusIssued:
		return target == InvoiceStatusPaid || target == InvoiceStatusVoided
	case InvoiceStatusPaid:
		return target == InvoiceStatusVoided
	case InvoiceStatusVoided:
		return false
	default:
		return false
	}
}

// InvoiceType tells how an invoice was created
type InvoiceType string

const (
	// InvoiceTypeSale is a direct sale issued by a seller
	InvoiceTypeSale InvoiceType = "VENTA"
	// InvoiceTypeOrder is derived from a customer order
	InvoiceTypeOrder InvoiceType = "PEDIDO"
)

// IsValid checks if the type is valid
func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeSale || t == InvoiceTypeOrder
}

// RecordState is the soft lifecycle flag of invoices and their lines,
// independent of the business status
type RecordState string

const (
	RecordStateActive   RecordState = "ACTIVO"
	RecordStateInactive RecordState = "INACTIVO"
)
