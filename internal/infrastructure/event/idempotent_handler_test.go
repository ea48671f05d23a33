package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockEventHandler struct {
	mock.Mock
}

func (m *MockEventHandler) Handle(ctx context.Context, evt shared.DomainEvent) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventHandler) EventTypes() []string {
	return m.Called().Get(0).([]string)
}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Close() error {
	return m.Called().Error(0)
}

func TestIdempotentHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("first delivery is processed, redelivery skipped", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		inner := new(MockEventHandler)
		evt := newTestEvent("OrderApproved")
		inner.On("Handle", mock.Anything, evt).Return(nil).Once()

		h := NewIdempotentHandler(inner, store, zap.NewNop())
		require.NoError(t, h.Handle(ctx, evt))
		require.NoError(t, h.Handle(ctx, evt))

		inner.AssertNumberOfCalls(t, "Handle", 1)
		assert.Equal(t, IdempotencyStats{Processed: 1, Duplicates: 1}, h.Stats())
	})

	t.Run("keys are scoped by consumer name", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		inner := new(MockEventHandler)
		evt := newTestEvent("OrderApproved")

		store.On("MarkProcessed", ctx, "invoice-deriver:"+evt.EventID().String(), 2*time.Hour).Return(true, nil)
		inner.On("Handle", ctx, evt).Return(nil)

		h := NewIdempotentHandler(inner, store, zap.NewNop(),
			WithConsumerName("invoice-deriver"),
			WithIdempotencyConfig(shared.IdempotencyConfig{Enabled: true, TTL: 2 * time.Hour}),
		)
		require.NoError(t, h.Handle(ctx, evt))

		store.AssertExpectations(t)
		inner.AssertExpectations(t)
	})

	t.Run("two consumers of one event both run", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		evt := newTestEvent("OrderApproved")
		first, second := new(MockEventHandler), new(MockEventHandler)
		first.On("Handle", mock.Anything, evt).Return(nil)
		second.On("Handle", mock.Anything, evt).Return(nil)

		require.NoError(t, NewIdempotentHandler(first, store, zap.NewNop(), WithConsumerName("a")).Handle(ctx, evt))
		require.NoError(t, NewIdempotentHandler(second, store, zap.NewNop(), WithConsumerName("b")).Handle(ctx, evt))

		first.AssertNumberOfCalls(t, "Handle", 1)
		second.AssertNumberOfCalls(t, "Handle", 1)
	})

	t.Run("store failure still processes", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		inner := new(MockEventHandler)
		evt := newTestEvent("OrderApproved")

		store.On("MarkProcessed", ctx, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
		inner.On("Handle", ctx, evt).Return(nil)

		h := NewIdempotentHandler(inner, store, zap.NewNop())
		require.NoError(t, h.Handle(ctx, evt))

		inner.AssertExpectations(t)
		assert.EqualValues(t, 1, h.Stats().Processed)
	})

	t.Run("handler error is returned and counted", func(t *testing.T) {
		store := cache.NewInMemoryIdempotencyStore()
		defer store.Close()

		inner := new(MockEventHandler)
		evt := newTestEvent("OrderApproved")
		inner.On("Handle", mock.Anything, evt).Return(errors.New("boom"))

		h := NewIdempotentHandler(inner, store, zap.NewNop())
		err := h.Handle(ctx, evt)

		require.EqualError(t, err, "boom")
		assert.EqualValues(t, 1, h.Stats().Failed)
	})

	t.Run("disabled idempotency bypasses the store", func(t *testing.T) {
		store := new(MockIdempotencyStore)
		inner := new(MockEventHandler)
		evt := newTestEvent("OrderApproved")
		inner.On("Handle", ctx, evt).Return(nil).Twice()

		h := NewIdempotentHandler(inner, store, zap.NewNop(),
			WithIdempotencyConfig(shared.IdempotencyConfig{Enabled: false}))
		require.NoError(t, h.Handle(ctx, evt))
		require.NoError(t, h.Handle(ctx, evt))

		store.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
		inner.AssertExpectations(t)
	})
}

func TestIdempotentHandler_EventTypes(t *testing.T) {
	inner := new(MockEventHandler)
	inner.On("EventTypes").Return([]string{"OrderApproved"})

	h := NewIdempotentHandler(inner, new(MockIdempotencyStore), zap.NewNop())
	assert.Equal(t, []string{"OrderApproved"}, h.EventTypes())
}

func TestIdempotentHandler_DefaultConsumerName(t *testing.T) {
	h := NewIdempotentHandler(new(MockEventHandler), new(MockIdempotencyStore), zap.NewNop())
	assert.Equal(t, "*event.MockEventHandler", h.consumer)
}

func TestIdempotentHandler_WithBus(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()

	inner := newTestHandler("OrderApproved")
	bus := startedBus(t, zap.NewNop())
	bus.Subscribe(NewIdempotentHandler(inner, store, zap.NewNop()))

	evt := newTestEvent("OrderApproved")
	require.NoError(t, bus.Publish(context.Background(), evt))
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, 1, inner.count())
}
