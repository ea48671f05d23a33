package persistence

import (
	"context"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const maxInvoicePageSize = 1000

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// LastNumberIssuedBetween returns the number of the invoice with the highest
// id issued within [from, to), or "" when there is none
func (r *GormInvoiceRepository) LastNumberIssuedBetween(ctx context.Context, from, to time.Time) (string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("issued_at >= ? AND issued_at < ?", from.UTC(), to.UTC()).
		Order("id DESC").
		Limit(1).
		Pluck("number", &numbers).Error; err != nil {
		return "", translateError(err, "find last invoice number")
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

// FindByID finds an invoice with its lines
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, translateError(err, "find invoice")
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices with their lines, newest issue date first.
// Without a page size every matching invoice is returned.
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id") })

	if !filter.IncludeInactive {
		query = query.Where("state = ?", billing.RecordStateActive)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issued_at >= ?", filter.IssuedFrom.UTC())
	}
	if filter.IssuedBefore != nil {
		query = query.Where("issued_at < ?", filter.IssuedBefore.UTC())
	}

	query = query.Order("issued_at DESC").Order("id DESC")
	if filter.PageSize > 0 {
		pageSize := min(filter.PageSize, maxInvoicePageSize)
		page := max(filter.Page, 1)
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var rows []models.InvoiceModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(err, "list invoices")
	}

	invoices := make([]billing.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, nil
}

// ExistsByOrder checks whether an invoice already references the order
func (r *GormInvoiceRepository) ExistsByOrder(ctx context.Context, orderID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, translateError(err, "check order invoice")
	}
	return count > 0, nil
}

// Create inserts the invoice and its lines, then copies the generated ids
// back onto the domain object
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err, "create invoice")
	}

	invoice.ID = model.ID
	for i := range invoice.Lines {
		invoice.Lines[i].ID = model.Lines[i].ID
		invoice.Lines[i].InvoiceID = model.ID
	}
	return nil
}

// Update persists status, description and state.
// The invoice's Version was incremented by the mutation, so the row must
// still hold Version-1; otherwise shared.ErrConcurrencyConflict is returned.
func (r *GormInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(map[string]any{
			"status":      invoice.Status,
			"description": invoice.Description,
			"state":       invoice.State,
			"version":     invoice.Version,
			"updated_at":  invoice.UpdatedAt.UTC(),
		})
	if result.Error != nil {
		return translateError(result.Error, "update invoice")
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
