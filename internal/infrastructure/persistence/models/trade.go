package models

import (
	"github.com/JostinQuilca/FoodApp/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for a customer order
type OrderModel struct {
	AggregateModel
	CustomerID      string            `gorm:"type:varchar(20);not null;index"`
	DeliveryType    string            `gorm:"type:varchar(30)"`
	DeliveryAddress string            `gorm:"type:varchar(300)"`
	TotalAmount     decimal.Decimal   `gorm:"type:numeric;not null"`
	Status          trade.OrderStatus `gorm:"type:varchar(30);not null;index"`
	State           trade.OrderState  `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
	Lines           []OrderLineModel  `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
// The invoice reference is filled in by the repository.
func (m *OrderModel) ToDomain() *trade.Order {
	lines := make([]trade.OrderLine, len(m.Lines))
	for i := range m.Lines {
		lines[i] = m.Lines[i].ToDomain()
	}
	return &trade.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CustomerID:        m.CustomerID,
		DeliveryType:      m.DeliveryType,
		DeliveryAddress:   m.DeliveryAddress,
		TotalAmount:       m.TotalAmount,
		Status:            m.Status,
		State:             m.State,
		Lines:             lines,
	}
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.CustomerID = o.CustomerID
	m.DeliveryType = o.DeliveryType
	m.DeliveryAddress = o.DeliveryAddress
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.State = o.State
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i, l := range o.Lines {
		m.Lines[i].FromDomain(l)
	}
}

// OrderLineModel is the persistence model for one order line
type OrderLineModel struct {
	ID        int64               `gorm:"primaryKey;autoIncrement"`
	OrderID   int64               `gorm:"not null;index"`
	ItemID    int64               `gorm:"not null"`
	ItemName  string              `gorm:"type:varchar(200)"`
	Quantity  int64               `gorm:"not null"`
	UnitPrice decimal.Decimal     `gorm:"type:numeric;not null"`
	Subtotal  decimal.NullDecimal `gorm:"type:numeric"`
	Notes     string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine
func (m *OrderLineModel) ToDomain() trade.OrderLine {
	line := trade.OrderLine{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ItemID:    m.ItemID,
		ItemName:  m.ItemName,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Notes:     m.Notes,
	}
	if m.Subtotal.Valid {
		subtotal := m.Subtotal.Decimal
		line.Subtotal = &subtotal
	}
	return line
}

// FromDomain populates the persistence model from a domain OrderLine
func (m *OrderLineModel) FromDomain(l trade.OrderLine) {
	m.ID = l.ID
	m.OrderID = l.OrderID
	m.ItemID = l.ItemID
	m.ItemName = l.ItemName
	m.Quantity = l.Quantity
	m.UnitPrice = l.UnitPrice
	m.Notes = l.Notes
	m.Subtotal = decimal.NullDecimal{}
	if l.Subtotal != nil {
		m.Subtotal = decimal.NewNullDecimal(*l.Subtotal)
	}
}
