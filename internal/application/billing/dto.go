package billing

import (
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/catalog"
	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineInput is one requested line of a direct sale
type CreateInvoiceLineInput struct {
	ItemID    int64           `json:"item_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes,omitempty"`
}

// CreateDirectInvoiceInput is the request to issue a direct-sale invoice
type CreateDirectInvoiceInput struct {
	CustomerID  string                   `json:"customer_id"`
	Lines       []CreateInvoiceLineInput `json:"lines"`
	Tax         *decimal.Decimal         `json:"tax,omitempty"`
	Description string                   `json:"description,omitempty"`
}

// UpdateInvoiceInput is a partial update of an invoice; nil fields are left unchanged
type UpdateInvoiceInput struct {
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CustomerResponse is the bill-to party of an invoice
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// ItemResponse is the catalog item referenced by an invoice line
type ItemResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// InvoiceLineResponse represents an invoice line in responses
type InvoiceLineResponse struct {
	ID        int64           `json:"id"`
	ItemID    int64           `json:"item_id"`
	ItemName  string          `json:"item_name,omitempty"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
	State     string          `json:"state"`
	Item      *ItemResponse   `json:"item,omitempty"`
}

// InvoiceResponse represents an invoice in responses and audit snapshots
type InvoiceResponse struct {
	ID          int64                 `json:"id"`
	Number      string                `json:"number"`
	CustomerID  string                `json:"customer_id"`
	OrderID     *int64                `json:"order_id,omitempty"`
	IssuedAt    time.Time             `json:"issued_at"`
	DueAt       time.Time             `json:"due_at"`
	Subtotal    decimal.Decimal       `json:"subtotal"`
	Tax         decimal.Decimal       `json:"tax"`
	Total       decimal.Decimal       `json:"total"`
	Status      string                `json:"status"`
	Type        string                `json:"type"`
	Description string                `json:"description,omitempty"`
	State       string                `json:"state"`
	Version     int                   `json:"version"`
	Customer    *CustomerResponse     `json:"customer,omitempty"`
	Lines       []InvoiceLineResponse `json:"lines"`
}

// ToInvoiceResponse converts an invoice into its response form.
// customers and items may be nil; matching entries are attached when present.
func ToInvoiceResponse(inv *billing.Invoice, customers map[string]identity.User, items map[int64]catalog.Item) InvoiceResponse {
	resp := InvoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		CustomerID:  inv.CustomerID,
		OrderID:     inv.OrderID,
		IssuedAt:    inv.IssuedAt,
		DueAt:       inv.DueAt,
		Subtotal:    inv.Subtotal,
		Tax:         inv.Tax,
		Total:       inv.Total,
		Status:      string(inv.Status),
		Type:        string(inv.Type),
		Description: inv.Description,
		State:       string(inv.State),
		Version:     inv.Version,
		Lines:       make([]InvoiceLineResponse, 0, len(inv.Lines)),
	}

	if u, ok := customers[inv.CustomerID]; ok {
		resp.Customer = &CustomerResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  string(u.Role),
		}
	}

	for _, l := range inv.Lines {
		line := InvoiceLineResponse{
			ID:        l.ID,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
			Notes:     l.Notes,
			State:     string(l.State),
		}
		if it, ok := items[l.ItemID]; ok {
			line.Item = &ItemResponse{ID: it.ID, Name: it.Name, Price: it.Price}
		}
		resp.Lines = append(resp.Lines, line)
	}
	return resp
}
