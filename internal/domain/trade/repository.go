package trade

import "context"

// OrderRepository is the slice of the order store that billing depends on
type OrderRepository interface {
	// FindByID loads an order with its lines and invoice reference
	FindByID(ctx context.Context, id int64) (*Order, error)

	// FindByIDForUpdate loads an order like FindByID while holding a row lock.
	// Only meaningful inside a transaction.
	FindByIDForUpdate(ctx context.Context, id int64) (*Order, error)

	// UpdateStatus persists the order's status using optimistic locking
	UpdateStatus(ctx context.Context, order *Order) error
}
