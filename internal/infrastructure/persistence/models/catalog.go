package models

import (
	"github.com/JostinQuilca/FoodApp/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CatalogItemModel is the persistence model for a menu item
type CatalogItemModel struct {
	BaseModel
	Name      string          `gorm:"type:varchar(200);not null"`
	Price     decimal.Decimal `gorm:"type:numeric;not null"`
	Available bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CatalogItemModel) TableName() string {
	return "catalog_items"
}

// ToDomain converts the persistence model to a domain Item
func (m *CatalogItemModel) ToDomain() catalog.Item {
	return catalog.Item{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Available: m.Available,
	}
}

// FromDomain populates the persistence model from a domain Item
func (m *CatalogItemModel) FromDomain(it catalog.Item) {
	m.ID = it.ID
	m.Name = it.Name
	m.Price = it.Price
	m.Available = it.Available
}
