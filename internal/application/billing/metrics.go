package billing

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceMetrics receives business measurements from the invoice service.
// Implementations must be safe for concurrent use.
type InvoiceMetrics interface {
	RecordInvoiceIssued(ctx context.Context, invoiceType billing.InvoiceType, total decimal.Decimal)
	RecordStatusChanged(ctx context.Context, from, to billing.InvoiceStatus)
	RecordAllocationRetry(ctx context.Context)
	RecordAuditFailure(ctx context.Context)
}

type noopMetrics struct{}

func (noopMetrics) RecordInvoiceIssued(context.Context, billing.InvoiceType, decimal.Decimal)         {}
func (noopMetrics) RecordStatusChanged(context.Context, billing.InvoiceStatus, billing.InvoiceStatus) {}
func (noopMetrics) RecordAllocationRetry(context.Context)                                             {}
func (noopMetrics) RecordAuditFailure(context.Context)                                                {}
