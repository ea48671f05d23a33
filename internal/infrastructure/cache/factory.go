package cache

import (
	"context"
	"fmt"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Store kinds accepted in event.idempotency_store
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// NewIdempotencyStore builds the store named by eventCfg.IdempotencyStore.
//
// When Redis is selected but unreachable, development falls back to the
// in-memory store with a warning; production fails.
func NewIdempotencyStore(
	ctx context.Context,
	env string,
	eventCfg config.EventConfig,
	redisCfg config.RedisConfig,
	logger *zap.Logger,
) (shared.IdempotencyStore, error) {
	switch eventCfg.IdempotencyStore {
	case "", StoreMemory:
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	case StoreRedis:
		store, err := NewRedisIdempotencyStore(ctx, redisCfg)
		if err == nil {
			logger.Info("using redis idempotency store", zap.String("addr", redisCfg.Addr()))
			return store, nil
		}
		if env == "production" {
			return nil, fmt.Errorf("redis idempotency store unavailable: %w", err)
		}
		logger.Warn("redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
		return NewInMemoryIdempotencyStore(), nil
	default:
		return nil, fmt.Errorf("unknown idempotency store %q", eventCfg.IdempotencyStore)
	}
}
