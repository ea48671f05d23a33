package billing

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var errActorRequired = shared.NewValidationError("ACTOR_REQUIRED", "an actor is required to modify invoices")

// UpdateInvoiceStatus applies a partial update to an invoice. Absent fields
// keep their value; an unknown or disallowed status fails without mutating
// anything. Every accepted update is audited with the before and after
// status and description.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, actorID string, id int64, input UpdateInvoiceInput) (_ *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "update_status", attribute.Int64("invoice.id", id))
	defer func() { telemetry.EndSpan(span, err) }()

	if actorID == "" {
		return nil, errActorRequired
	}

	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "INVOICE_NOT_FOUND", "invoice not found")
	}

	before := invoice.Snapshot()
	changed, err := invoice.ApplyUpdate(billing.InvoicePatch{
		Status:      input.Status,
		Description: input.Description,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.invoices.Update(ctx, invoice); err != nil {
			return nil, err
		}
	}

	after := invoice.Snapshot()
	s.logger.Info("invoice updated",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.Number),
		zap.String("actor_id", actorID),
		zap.String("from_status", string(before.Status)),
		zap.String("to_status", string(after.Status)),
		zap.Bool("changed", changed),
	)

	if before.Status != after.Status {
		s.metrics.RecordStatusChanged(ctx, before.Status, after.Status)
	}
	s.recordAudit(ctx, actorID, audit.ActionUpdate, invoice.ID, before, after)
	s.publishEvents(ctx, invoice)

	resp := s.hydrate(ctx, []billing.Invoice{*invoice})
	return &resp[0], nil
}

// VoidInvoice marks an invoice ANULADA. Voiding is the terminal state;
// voiding an already voided invoice fails with a validation error.
func (s *InvoiceService) VoidInvoice(ctx context.Context, actorID string, id int64) (_ *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "void", attribute.Int64("invoice.id", id))
	defer func() { telemetry.EndSpan(span, err) }()

	if actorID == "" {
		return nil, errActorRequired
	}

	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "INVOICE_NOT_FOUND", "invoice not found")
	}

	before := invoice.Snapshot()
	if err := invoice.Void(s.now()); err != nil {
		return nil, err
	}
	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("invoice voided",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.Number),
		zap.String("actor_id", actorID),
		zap.String("from_status", string(before.Status)),
	)

	s.metrics.RecordStatusChanged(ctx, before.Status, billing.InvoiceStatusVoided)
	s.recordAudit(ctx, actorID, audit.ActionUpdate, invoice.ID, before, invoice.Snapshot())
	s.publishEvents(ctx, invoice)

	resp := s.hydrate(ctx, []billing.Invoice{*invoice})
	return &resp[0], nil
}
