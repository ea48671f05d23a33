package event

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyStats is a snapshot of an IdempotentHandler's counters
type IdempotencyStats struct {
	Processed  int64
	Duplicates int64
	Failed     int64
}

// IdempotentHandler wraps an EventHandler so that a redelivered event
// produces its side effect at most once per consumer.
type IdempotentHandler struct {
	handler  shared.EventHandler
	store    shared.IdempotencyStore
	config   shared.IdempotencyConfig
	consumer string
	logger   *zap.Logger

	processed  atomic.Int64
	duplicates atomic.Int64
	failed     atomic.Int64
}

// IdempotentHandlerOption configures an IdempotentHandler
type IdempotentHandlerOption func(*IdempotentHandler)

// WithIdempotencyConfig overrides the default TTL and enablement
func WithIdempotencyConfig(config shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.config = config
	}
}

// WithConsumerName sets the name that scopes idempotency keys.
// It defaults to the wrapped handler's type name.
func WithConsumerName(name string) IdempotentHandlerOption {
	return func(h *IdempotentHandler) {
		h.consumer = name
	}
}

// NewIdempotentHandler wraps handler with de-duplication backed by store
func NewIdempotentHandler(
	handler shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
	opts ...IdempotentHandlerOption,
) *IdempotentHandler {
	h := &IdempotentHandler{
		handler:  handler,
		store:    store,
		config:   shared.DefaultIdempotencyConfig(),
		consumer: fmt.Sprintf("%T", handler),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes delegates to the wrapped handler
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle marks the event as seen, then delegates. A store failure does not
// block processing; a duplicate is acknowledged without calling the handler.
func (h *IdempotentHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, evt)
	}

	key := shared.IdempotencyKey(h.consumer, evt)
	fields := []zap.Field{
		zap.String("idempotency_key", key),
		zap.String("event_type", evt.EventType()),
	}

	isNew, err := h.store.MarkProcessed(ctx, key, h.config.TTL)
	switch {
	case err != nil:
		h.logger.Warn("idempotency check failed, processing anyway", append(fields, zap.Error(err))...)
	case !isNew:
		h.duplicates.Add(1)
		h.logger.Debug("duplicate event skipped", fields...)
		return nil
	}

	// The key is kept on failure; a retry is possible once it expires.
	if err := h.handler.Handle(ctx, evt); err != nil {
		h.failed.Add(1)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns the handler's counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		Processed:  h.processed.Load(),
		Duplicates: h.duplicates.Load(),
		Failed:     h.failed.Load(),
	}
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
