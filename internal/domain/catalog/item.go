package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Item is a sellable menu item (dish) as seen by billing.
// Prices are decimal with at most two fractional digits.
type Item struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Available bool
}

// ItemRepository is the read-only catalog lookup used by billing
type ItemRepository interface {
	// FindByIDs returns the items with the given ids. Missing ids are simply
	// absent from the result, so callers compare lengths to detect them.
	FindByIDs(ctx context.Context, ids []int64) ([]Item, error)
}

// IndexByID maps items by their id
func IndexByID(items []Item) map[int64]Item {
	out := make(map[int64]Item, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}
