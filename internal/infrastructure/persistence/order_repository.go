package persistence

import (
	"context"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/domain/trade"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements trade.OrderRepository using GORM.
// Orders are written by the ordering module; billing reads them, locks
// them while deriving an invoice, and updates their status.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its lines and invoice reference
func (r *GormOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx), id)
}

// FindByIDForUpdate loads an order while holding a row lock (SELECT ... FOR UPDATE).
// Dialects without row locks ignore the clause.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*trade.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) find(ctx context.Context, query *gorm.DB, id int64) (*trade.Order, error) {
	var model models.OrderModel
	if err := query.Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "find order")
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("id").
		Find(&model.Lines).Error; err != nil {
		return nil, translateError(err, "find order lines")
	}

	order := model.ToDomain()
	ref, err := r.invoiceReference(ctx, id)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		order.InvoiceID = &ref.ID
		order.InvoiceNumber = ref.Number
	}
	return order, nil
}

type invoiceRef struct {
	ID     int64
	Number string
}

func (r *GormOrderRepository) invoiceReference(ctx context.Context, orderID int64) (*invoiceRef, error) {
	var refs []invoiceRef
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("id", "number").
		Where("order_id = ?", orderID).
		Limit(1).
		Find(&refs).Error; err != nil {
		return nil, translateError(err, "find order invoice")
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return &refs[0], nil
}

// UpdateStatus persists the order status and version.
// The order's Version has already been incremented by ChangeStatus, so the
// row must still hold Version-1.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]any{
			"status":     order.Status,
			"version":    order.Version,
			"updated_at": order.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error, "update order status")
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Create inserts an order with its lines. Billing never creates orders;
// this serves seeding and tests.
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	var model models.OrderModel
	model.FromDomain(order)
	if model.CreatedAt.IsZero() {
		now := time.Now().UTC()
		model.CreatedAt, model.UpdatedAt = now, now
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err, "create order")
	}
	order.ID = model.ID
	for i := range order.Lines {
		order.Lines[i].ID = model.Lines[i].ID
		order.Lines[i].OrderID = model.ID
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
