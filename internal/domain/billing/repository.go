package billing

import (
	"context"
	"time"
)

// InvoiceFilter narrows invoice listings. Results are always ordered by
// issue date descending, then id descending.
type InvoiceFilter struct {
	CustomerID *string
	Status     *InvoiceStatus

	// IssuedFrom is inclusive, IssuedBefore exclusive
	IssuedFrom   *time.Time
	IssuedBefore *time.Time

	// IncludeInactive also returns INACTIVO invoices
	IncludeInactive bool

	// PageSize <= 0 lists every match; Page is 1-based
	Page     int
	PageSize int
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	NumberSource

	// FindByID finds an invoice with its lines; returns shared.ErrNotFound if absent
	FindByID(ctx context.Context, id int64) (*Invoice, error)

	// FindAll lists invoices (with lines) matching the filter
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// ExistsByOrder checks whether an invoice already references the order
	ExistsByOrder(ctx context.Context, orderID int64) (bool, error)

	// Create inserts the invoice and its lines, assigning their IDs.
	// A unique violation on the number or the order reference returns shared.ErrDuplicateKey.
	Create(ctx context.Context, invoice *Invoice) error

	// Update persists status, description and state using optimistic locking
	// on Version; returns shared.ErrConcurrencyConflict when the row moved on
	Update(ctx context.Context, invoice *Invoice) error
}
