package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers which events a handler has already consumed,
// so redelivered events do not produce a second side effect
type IdempotencyStore interface {
	// MarkProcessed records the key with a TTL.
	// It returns true if the key was newly recorded, false if it was already present
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases the store's resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a processed key is remembered (default 24h)
	TTL time.Duration

	// Enabled switches de-duplication on (default true)
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}

// IdempotencyKey scopes an event ID to a consumer, so two handlers of the
// same event keep independent records
func IdempotencyKey(consumer string, event DomainEvent) string {
	return consumer + ":" + event.EventID().String()
}
