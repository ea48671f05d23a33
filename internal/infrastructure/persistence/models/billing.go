package models

import (
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate.
// Number is unique, and so is OrderID when set: an order carries at most one invoice.
type InvoiceModel struct {
	AggregateModel
	Number      string                `gorm:"type:varchar(30);not null;uniqueIndex:uq_invoices_number"`
	CustomerID  string                `gorm:"type:varchar(20);not null;index"`
	OrderID     *int64                `gorm:"uniqueIndex:uq_invoices_order_id"`
	IssuedAt    time.Time             `gorm:"not null;index"`
	DueAt       time.Time             `gorm:"not null"`
	Subtotal    decimal.Decimal       `gorm:"type:numeric;not null"`
	Tax         decimal.Decimal       `gorm:"type:numeric;not null"`
	Total       decimal.Decimal       `gorm:"type:numeric;not null"`
	Status      billing.InvoiceStatus `gorm:"type:varchar(10);not null;index"`
	Type        billing.InvoiceType   `gorm:"type:varchar(10);not null"`
	Description string                `gorm:"type:text"`
	State       billing.RecordState   `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
	Lines       []InvoiceLineModel    `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	lines := make([]billing.InvoiceLine, len(m.Lines))
	for i := range m.Lines {
		lines[i] = m.Lines[i].ToDomain()
	}
	return &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		CustomerID:        m.CustomerID,
		OrderID:           m.OrderID,
		IssuedAt:          m.IssuedAt,
		DueAt:             m.DueAt,
		Subtotal:          m.Subtotal,
		Tax:               m.Tax,
		Total:             m.Total,
		Status:            m.Status,
		Type:              m.Type,
		Description:       m.Description,
		State:             m.State,
		Lines:             lines,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.Number = inv.Number
	m.CustomerID = inv.CustomerID
	m.OrderID = inv.OrderID
	m.IssuedAt = inv.IssuedAt.UTC()
	m.DueAt = inv.DueAt.UTC()
	m.Subtotal = inv.Subtotal
	m.Tax = inv.Tax
	m.Total = inv.Total
	m.Status = inv.Status
	m.Type = inv.Type
	m.Description = inv.Description
	m.State = inv.State
	m.Lines = make([]InvoiceLineModel, len(inv.Lines))
	for i := range inv.Lines {
		m.Lines[i].FromDomain(inv.Lines[i])
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceLineModel is the persistence model for one invoice line
type InvoiceLineModel struct {
	ID        int64               `gorm:"primaryKey;autoIncrement"`
	InvoiceID int64               `gorm:"not null;index"`
	ItemID    int64               `gorm:"not null"`
	ItemName  string              `gorm:"type:varchar(200)"`
	Quantity  int64               `gorm:"not null"`
	UnitPrice decimal.Decimal     `gorm:"type:numeric;not null"`
	Subtotal  decimal.Decimal     `gorm:"type:numeric;not null"`
	Notes     string              `gorm:"type:text"`
	State     billing.RecordState `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine
func (m *InvoiceLineModel) ToDomain() billing.InvoiceLine {
	return billing.InvoiceLine{
		ID:        m.ID,
		InvoiceID: m.InvoiceID,
		ItemID:    m.ItemID,
		ItemName:  m.ItemName,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Subtotal:  m.Subtotal,
		Notes:     m.Notes,
		State:     m.State,
	}
}

// FromDomain populates the persistence model from a domain InvoiceLine
func (m *InvoiceLineModel) FromDomain(l billing.InvoiceLine) {
	m.ID = l.ID
	m.InvoiceID = l.InvoiceID
	m.ItemID = l.ItemID
	m.ItemName = l.ItemName
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.Subtotal = l.Subtotal
	m.Notes = l.Notes
	m.State = l.State
}
