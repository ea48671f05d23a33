package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderInvoiceDeriver derives the invoice of an order
type OrderInvoiceDeriver interface {
	DeriveInvoiceFromOrder(ctx context.Context, actorID string, orderID int64) (*InvoiceResponse, error)
}

// OrderApprovedHandler handles OrderApprovedEvent
// and issues the order's invoice when the order is authorized
type OrderApprovedHandler struct {
	deriver OrderInvoiceDeriver
	logger  *zap.Logger
}

// NewOrderApprovedHandler creates a new handler for order approved events
func NewOrderApprovedHandler(deriver OrderInvoiceDeriver, logger *zap.Logger) *OrderApprovedHandler {
	return &OrderApprovedHandler{
		deriver: deriver,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderApprovedHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderApproved}
}

// Handle processes an OrderApprovedEvent by deriving the order's invoice
func (h *OrderApprovedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	approved, ok := event.(*trade.OrderApprovedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeOrderApproved),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeOrderApproved, event.EventType())
	}

	h.logger.Info("processing order approved event for invoice derivation",
		zap.Int64("order_id", approved.OrderID),
		zap.String("customer_id", approved.CustomerID),
		zap.String("total_amount", approved.TotalAmount),
	)

	invoice, err := h.deriver.DeriveInvoiceFromOrder(ctx, "", approved.OrderID)
	if err != nil {
		// Redelivery or a concurrent derivation already produced the invoice
		if errors.Is(err, ErrInvoiceAlreadyExists) || errors.Is(err, ErrOrderInvoicedTwice) {
			h.logger.Warn("invoice already exists for order, skipping",
				zap.Int64("order_id", approved.OrderID),
			)
			return nil
		}
		h.logger.Error("failed to derive invoice from order",
			zap.Int64("order_id", approved.OrderID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to derive invoice for order %d: %w", approved.OrderID, err)
	}

	h.logger.Info("invoice derived from approved order",
		zap.Int64("order_id", approved.OrderID),
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.Number),
	)
	return nil
}

var _ shared.EventHandler = (*OrderApprovedHandler)(nil)
