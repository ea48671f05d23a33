package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/logger"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// InMemoryEventBus delivers domain events to subscribed handlers in-process.
//
// Delivery is synchronous and best-effort: a failing or panicking handler is
// logged and never reaches the publisher, and the remaining handlers still run.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
	running  atomic.Bool
	failures atomic.Int64
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger.Named("event_bus"),
	}
}

// Publish hands each event to its handlers, in subscription order.
// Events published while the bus is stopped are dropped with a warning.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	if !b.running.Load() {
		for _, evt := range events {
			b.logger.Warn("event bus not running, event dropped",
				zap.String("event_type", evt.EventType()),
				zap.String("event_id", evt.EventID().String()),
			)
		}
		return nil
	}

	for _, evt := range events {
		handlerCtx := logger.WithEventID(ctx, evt.EventID().String())
		for _, handler := range b.registry.GetHandlers(evt.EventType()) {
			if err := b.dispatch(handlerCtx, handler, evt); err != nil {
				b.failures.Add(1)
				logger.ForContext(handlerCtx, b.logger).Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.Int64("aggregate_id", evt.AggregateID()),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// Subscribe registers a handler. Without explicit event types the handler's
// own EventTypes are used; an empty list subscribes to every event.
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler from every event type
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
}

// Start opens the bus for delivery
func (b *InMemoryEventBus) Start(ctx context.Context) error {
	b.running.Store(true)
	b.logger.Info("event bus started", zap.Int("handlers", b.registry.Count()))
	return nil
}

// Stop closes the bus. Publish calls already dispatching run to completion.
func (b *InMemoryEventBus) Stop(ctx context.Context) error {
	b.running.Store(false)
	b.logger.Info("event bus stopped", zap.Int64("handler_failures", b.failures.Load()))
	return nil
}

// Failures returns how many handler invocations failed since creation
func (b *InMemoryEventBus) Failures() int64 {
	return b.failures.Load()
}

func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "event_bus", "dispatch",
		attribute.String("event.type", evt.EventType()),
		attribute.String("event.id", evt.EventID().String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler.Handle(ctx, evt)
}

var _ shared.EventBus = (*InMemoryEventBus)(nil)
