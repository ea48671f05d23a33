package billing

import (
	"context"
	"sync"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/catalog"
	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []string) ([]identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) LastNumberIssuedBetween(ctx context.Context, from, to time.Time) (string, error) {
	args := m.Called(ctx, from, to)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id int64) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter billing.InvoiceFilter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ExistsByOrder(ctx context.Context, orderID int64) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id int64) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, id int64) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockAuditSink is a mock implementation of audit.Sink
type MockAuditSink struct {
	mock.Mock
}

func (m *MockAuditSink) LogAction(ctx context.Context, actorID string, action audit.Action, entityName, entityID string, before, after any) error {
	args := m.Called(ctx, actorID, action, entityName, entityID, before, after)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockOrderInvoiceDeriver is a mock implementation of OrderInvoiceDeriver
type MockOrderInvoiceDeriver struct {
	mock.Mock
}

func (m *MockOrderInvoiceDeriver) DeriveInvoiceFromOrder(ctx context.Context, actorID string, orderID int64) (*InvoiceResponse, error) {
	args := m.Called(ctx, actorID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*InvoiceResponse), args.Error(1)
}

// recordingMetrics counts metric calls
type recordingMetrics struct {
	mu              sync.Mutex
	issued          []billing.InvoiceType
	statusChanges   [][2]billing.InvoiceStatus
	retries         int
	auditFailures   int
	lastIssuedTotal decimal.Decimal
}

func (r *recordingMetrics) RecordInvoiceIssued(_ context.Context, t billing.InvoiceType, total decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued = append(r.issued, t)
	r.lastIssuedTotal = total
}

func (r *recordingMetrics) RecordStatusChanged(_ context.Context, from, to billing.InvoiceStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statusChanges = append(r.statusChanges, [2]billing.InvoiceStatus{from, to})
}

func (r *recordingMetrics) RecordAllocationRetry(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retries++
}

func (r *recordingMetrics) RecordAuditFailure(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auditFailures++
}

var (
	_ identity.UserRepository   = (*MockUserRepository)(nil)
	_ catalog.ItemRepository    = (*MockItemRepository)(nil)
	_ billing.InvoiceRepository = (*MockInvoiceRepository)(nil)
	_ trade.OrderRepository     = (*MockOrderRepository)(nil)
	_ audit.Sink                = (*MockAuditSink)(nil)
	_ shared.EventPublisher     = (*MockEventPublisher)(nil)
	_ InvoiceMetrics            = (*recordingMetrics)(nil)
)
