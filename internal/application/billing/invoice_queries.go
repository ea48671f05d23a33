package billing

import (
	"context"
	"fmt"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/catalog"
	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"go.uber.org/zap"
)

// GetInvoicesForCustomer lists the active invoices of a customer, newest first
func (s *InvoiceService) GetInvoicesForCustomer(ctx context.Context, customerID string) ([]InvoiceResponse, error) {
	if _, err := s.users.FindByID(ctx, customerID); err != nil {
		return nil, notFoundAs(err, "CUSTOMER_NOT_FOUND", "customer not found")
	}
	return s.list(ctx, billing.InvoiceFilter{CustomerID: &customerID})
}

// GetInvoicesByStatus lists active invoices in the given status, newest first
func (s *InvoiceService) GetInvoicesByStatus(ctx context.Context, status string) ([]InvoiceResponse, error) {
	parsed, err := billing.ParseInvoiceStatus(status)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, billing.InvoiceFilter{Status: &parsed})
}

// GetInvoice returns one invoice with its customer, lines and items
func (s *InvoiceService) GetInvoice(ctx context.Context, id int64) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "INVOICE_NOT_FOUND", "invoice not found")
	}
	resp := s.hydrate(ctx, []billing.Invoice{*invoice})
	return &resp[0], nil
}

// GetAllInvoices lists all active invoices, newest first.
// Restricting this to privileged roles is left to the caller.
func (s *InvoiceService) GetAllInvoices(ctx context.Context) ([]InvoiceResponse, error) {
	return s.list(ctx, billing.InvoiceFilter{})
}

// GetInvoicesForCurrentMonth lists active invoices issued in the current
// calendar month, from the first day at midnight up to, but excluding, the
// first day of the next month.
func (s *InvoiceService) GetInvoicesForCurrentMonth(ctx context.Context) ([]InvoiceResponse, error) {
	from := billing.StartOfMonth(s.now())
	to := from.AddDate(0, 1, 0)
	return s.list(ctx, billing.InvoiceFilter{IssuedFrom: &from, IssuedBefore: &to})
}

func (s *InvoiceService) list(ctx context.Context, filter billing.InvoiceFilter) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return s.hydrate(ctx, invoices), nil
}

// hydrate converts invoices to responses with customers and items attached.
// Lookup failures degrade to responses without the associations.
func (s *InvoiceService) hydrate(ctx context.Context, invoices []billing.Invoice) []InvoiceResponse {
	customerIDs := make([]string, 0, len(invoices))
	itemIDs := make([]int64, 0)
	seenCustomer := make(map[string]struct{})
	seenItem := make(map[int64]struct{})
	for _, inv := range invoices {
		if _, ok := seenCustomer[inv.CustomerID]; !ok {
			seenCustomer[inv.CustomerID] = struct{}{}
			customerIDs = append(customerIDs, inv.CustomerID)
		}
		for _, l := range inv.Lines {
			if _, ok := seenItem[l.ItemID]; !ok {
				seenItem[l.ItemID] = struct{}{}
				itemIDs = append(itemIDs, l.ItemID)
			}
		}
	}

	customers := make(map[string]identity.User, len(customerIDs))
	if len(customerIDs) > 0 {
		users, err := s.users.FindByIDs(ctx, customerIDs)
		if err != nil {
			s.logger.Warn("failed to load invoice customers", zap.Error(err))
		}
		for _, u := range users {
			customers[u.ID] = u
		}
	}

	var items map[int64]catalog.Item
	if len(itemIDs) > 0 {
		found, err := s.items.FindByIDs(ctx, itemIDs)
		if err != nil {
			s.logger.Warn("failed to load invoice items", zap.Error(err))
		}
		items = catalog.IndexByID(found)
	}

	out := make([]InvoiceResponse, 0, len(invoices))
	for i := range invoices {
		out = append(out, ToInvoiceResponse(&invoices[i], customers, items))
	}
	return out
}
