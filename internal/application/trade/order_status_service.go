package trade

import (
	"context"
	"errors"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderStatusResponse describes an order after a status change
type OrderStatusResponse struct {
	ID             int64  `json:"id"`
	CustomerID     string `json:"customer_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	Version        int    `json:"version"`
}

// OrderStatusService changes order statuses on behalf of the ordering module
// and notifies billing through the event bus
type OrderStatusService struct {
	orders         trade.OrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	clock          func() time.Time
}

// OrderStatusServiceOption is a functional option for configuring OrderStatusService
type OrderStatusServiceOption func(*OrderStatusService)

// WithEventPublisher sets the publisher for order domain events
func WithEventPublisher(publisher shared.EventPublisher) OrderStatusServiceOption {
	return func(s *OrderStatusService) {
		s.eventPublisher = publisher
	}
}

// WithClock overrides the time source
func WithClock(clock func() time.Time) OrderStatusServiceOption {
	return func(s *OrderStatusService) {
		s.clock = clock
	}
}

// NewOrderStatusService creates a new OrderStatusService
func NewOrderStatusService(orders trade.OrderRepository, logger *zap.Logger, opts ...OrderStatusServiceOption) *OrderStatusService {
	s := &OrderStatusService{
		orders: orders,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ChangeStatus validates and persists a new order status, then publishes the
// order's pending events. Entering Autorizado publishes OrderApprovedEvent,
// which billing turns into the order's invoice. A failing subscriber never
// undoes the status change.
func (s *OrderStatusService) ChangeStatus(ctx context.Context, actor identity.Actor, orderID int64, status string) (*OrderStatusResponse, error) {
	if actor.IsZero() {
		return nil, shared.NewValidationError("ACTOR_REQUIRED", "an actor is required to change order status")
	}
	target, err := trade.ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("ORDER_NOT_FOUND", "order not found")
		}
		return nil, err
	}

	previous := order.Status
	if err := order.ChangeStatus(target, s.clock()); err != nil {
		return nil, err
	}
	if previous != order.Status {
		if err := s.orders.UpdateStatus(ctx, order); err != nil {
			return nil, err
		}
	}

	s.logger.Info("order status changed",
		zap.Int64("order_id", order.ID),
		zap.String("actor_id", actor.ID),
		zap.String("from_status", string(previous)),
		zap.String("to_status", string(order.Status)),
	)

	s.publishEvents(ctx, order)

	return &OrderStatusResponse{
		ID:             order.ID,
		CustomerID:     order.CustomerID,
		PreviousStatus: string(previous),
		Status:         string(order.Status),
		Version:        order.Version,
	}, nil
}

func (s *OrderStatusService) publishEvents(ctx context.Context, order *trade.Order) {
	events := order.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.Int64("order_id", order.ID),
			zap.Error(err),
		)
	}
}
