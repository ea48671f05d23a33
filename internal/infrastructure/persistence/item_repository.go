package persistence

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/catalog"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByIDs returns the items with the given ids, ordered by id
func (r *GormItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return []catalog.Item{}, nil
	}
	var rows []models.CatalogItemModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err, "find catalog items")
	}
	items := make([]catalog.Item, len(rows))
	for i := range rows {
		items[i] = rows[i].ToDomain()
	}
	return items, nil
}

// Create inserts a catalog item and assigns its id
func (r *GormItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	var model models.CatalogItemModel
	model.FromDomain(*item)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err, "create catalog item")
	}
	item.ID = model.ID
	return nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
