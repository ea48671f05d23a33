package cache

import (
	"context"
	"sync"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

const defaultSweepInterval = 5 * time.Minute

// InMemoryIdempotencyStore keeps processed keys in a map guarded by a mutex.
// State is per process, so it only de-duplicates within one instance.
type InMemoryIdempotencyStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// InMemoryOption configures an InMemoryIdempotencyStore
type InMemoryOption func(*inMemorySettings)

type inMemorySettings struct {
	sweepInterval time.Duration
	now           func() time.Time
}

// WithSweepInterval sets how often expired keys are purged
func WithSweepInterval(d time.Duration) InMemoryOption {
	return func(s *inMemorySettings) {
		s.sweepInterval = d
	}
}

// WithStoreClock replaces the wall clock used for expiry
func WithStoreClock(now func() time.Time) InMemoryOption {
	return func(s *inMemorySettings) {
		s.now = now
	}
}

// NewInMemoryIdempotencyStore creates the store and starts its sweeper.
// Call Close to stop the sweeper.
func NewInMemoryIdempotencyStore(opts ...InMemoryOption) *InMemoryIdempotencyStore {
	settings := inMemorySettings{sweepInterval: defaultSweepInterval, now: time.Now}
	for _, opt := range opts {
		opt(&settings)
	}

	s := &InMemoryIdempotencyStore{
		expires: make(map[string]time.Time),
		now:     settings.now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.sweepLoop(settings.sweepInterval)
	return s
}

// MarkProcessed records key until now+ttl. An expired key counts as new.
func (s *InMemoryIdempotencyStore) MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if exp, ok := s.expires[key]; ok && now.Before(exp) {
		return false, nil
	}
	s.expires[key] = now.Add(ttl)
	return true, nil
}

// IsProcessed reports whether key is recorded and unexpired
func (s *InMemoryIdempotencyStore) IsProcessed(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expires[key]
	return ok && s.now().Before(exp), nil
}

// Close stops the sweeper. It is safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

// Len returns the number of keys held, expired or not
func (s *InMemoryIdempotencyStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.expires)
}

func (s *InMemoryIdempotencyStore) sweepLoop(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, key)
		}
	}
}

var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
