package billing

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories that
// take part in issuing an invoice. Number allocation, the order row lock and
// the invoice and line inserts all run on the same transaction and are
// committed or rolled back together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories bound to the current transaction
type TransactionalRepositories interface {
	// InvoiceRepo returns the invoice repository scoped to the current transaction
	InvoiceRepo() billing.InvoiceRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
}

// NoOpTransactionScope runs the function against plain repositories without a transaction.
// This is useful for testing.
type NoOpTransactionScope struct {
	invoiceRepo billing.InvoiceRepository
	orderRepo   trade.OrderRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(invoiceRepo billing.InvoiceRepository, orderRepo trade.OrderRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
