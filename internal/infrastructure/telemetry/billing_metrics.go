package telemetry

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
)

// BillingMetrics records invoice business measurements
type BillingMetrics struct {
	issued          *Counter
	issuedAmount    *Histogram
	statusChanges   *Counter
	allocationRetry *Counter
	auditFailures   *Counter
}

// NewBillingMetrics creates the billing instruments
func NewBillingMetrics(meter metric.Meter) (*BillingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   BillingMetrics
		err error
	)
	if m.issued, err = NewCounter(meter, "foodapp_invoices_issued_total",
		"Invoices issued by type", "{invoice}"); err != nil {
		return nil, err
	}
	if m.issuedAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "foodapp_invoice_total_amount",
		Description: "Distribution of invoice totals",
		Unit:        "{currency}",
		Boundaries:  InvoiceAmountBuckets,
	}); err != nil {
		return nil, err
	}
	if m.statusChanges, err = NewCounter(meter, "foodapp_invoice_status_changes_total",
		"Invoice status transitions", "{change}"); err != nil {
		return nil, err
	}
	if m.allocationRetry, err = NewCounter(meter, "foodapp_invoice_number_retries_total",
		"Invoice number collisions that forced a retry", "{retry}"); err != nil {
		return nil, err
	}
	if m.auditFailures, err = NewCounter(meter, "foodapp_audit_failures_total",
		"Audit records that could not be written", "{record}"); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordInvoiceIssued counts a new invoice and records its total
func (m *BillingMetrics) RecordInvoiceIssued(ctx context.Context, invoiceType billing.InvoiceType, total decimal.Decimal) {
	attr := AttrInvoiceType.String(string(invoiceType))
	m.issued.Inc(ctx, attr)
	m.issuedAmount.Record(ctx, total.InexactFloat64(), attr)
}

// RecordStatusChanged counts a status transition
func (m *BillingMetrics) RecordStatusChanged(ctx context.Context, from, to billing.InvoiceStatus) {
	m.statusChanges.Inc(ctx, AttrFromStatus.String(string(from)), AttrToStatus.String(string(to)))
}

// RecordAllocationRetry counts a retried number allocation
func (m *BillingMetrics) RecordAllocationRetry(ctx context.Context) {
	m.allocationRetry.Inc(ctx)
}

// RecordAuditFailure counts an audit write that was swallowed
func (m *BillingMetrics) RecordAuditFailure(ctx context.Context) {
	m.auditFailures.Inc(ctx)
}
