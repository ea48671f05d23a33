package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
	"github.com/JostinQuilca/FoodApp/internal/domain/billing"
	"github.com/JostinQuilca/FoodApp/internal/domain/catalog"
	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AuditEntityInvoice is the entity name written to audit records for invoices
const AuditEntityInvoice = "invoice"

// Errors surfaced by the invoice service in addition to the domain errors
var (
	ErrInvoiceAlreadyExists = shared.NewValidationError("INVOICE_ALREADY_EXISTS", "invoice already exists for this order")
	ErrOrderNotAuthorized   = shared.NewValidationError("ORDER_NOT_AUTHORIZED", "order must be authorized before it is invoiced")
	ErrItemsNotFound        = shared.NewValidationError("ITEMS_NOT_FOUND", "one or more items do not exist")
	ErrOrderInvoicedTwice   = shared.NewIntegrityError("ORDER_INVOICED_TWICE", "order was invoiced concurrently")
	ErrNumberRetryExhausted = shared.NewIntegrityError("INVOICE_NUMBER_CONFLICT", "could not allocate a unique invoice number")
)

// Config holds the tunables of the invoice service
type Config struct {
	// NumberPrefix is the literal that starts invoice numbers
	NumberPrefix string
	// TaxRate applies when no explicit tax amount is given
	TaxRate decimal.Decimal
	// PaymentTermDays is the distance between issue and due date
	PaymentTermDays int
	// Location defines calendar day and month boundaries
	Location *time.Location
	// RequireAuthorizedOrder only lets Autorizado orders be invoiced.
	// Off by default: the ordering module invoices on approval only.
	RequireAuthorizedOrder bool
	// MaxAllocationAttempts bounds retries after a unique-number collision
	MaxAllocationAttempts int
}

// DefaultConfig returns the default service configuration
func DefaultConfig() Config {
	return Config{
		NumberPrefix:          billing.DefaultNumberPrefix,
		TaxRate:               billing.DefaultTaxRate,
		PaymentTermDays:       billing.DefaultPaymentTermDays,
		Location:              time.Local,
		MaxAllocationAttempts: 5,
	}
}

// InvoiceService is the invoice lifecycle engine: it issues direct-sale and
// order-derived invoices, answers invoice queries, and applies status changes.
type InvoiceService struct {
	users      identity.UserRepository
	items      catalog.ItemRepository
	invoices   billing.InvoiceRepository
	txScope    TransactionScope
	auditSink  audit.Sink
	allocator  billing.NumberAllocator
	calculator billing.TaxCalculator
	cfg        Config

	eventPublisher shared.EventPublisher
	metrics        InvoiceMetrics
	logger         *zap.Logger
	clock          func() time.Time
}

// InvoiceServiceOption is a functional option for configuring InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// WithConfig replaces the default configuration
func WithConfig(cfg Config) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.cfg = cfg
	}
}

// WithEventPublisher sets the publisher for invoice domain events
func WithEventPublisher(publisher shared.EventPublisher) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.eventPublisher = publisher
	}
}

// WithMetrics sets the business metrics recorder
func WithMetrics(metrics InvoiceMetrics) InvoiceServiceOption {
	return func(s *InvoiceService) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// WithClock overrides the time source
func WithClock(clock func() time.Time) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.clock = clock
	}
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	users identity.UserRepository,
	items catalog.ItemRepository,
	invoices billing.InvoiceRepository,
	txScope TransactionScope,
	auditSink audit.Sink,
	logger *zap.Logger,
	opts ...InvoiceServiceOption,
) *InvoiceService {
	s := &InvoiceService{
		users:     users,
		items:     items,
		invoices:  invoices,
		txScope:   txScope,
		auditSink: auditSink,
		cfg:       DefaultConfig(),
		metrics:   noopMetrics{},
		logger:    logger,
		clock:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.Location == nil {
		s.cfg.Location = time.Local
	}
	if s.cfg.MaxAllocationAttempts < 1 {
		s.cfg.MaxAllocationAttempts = 1
	}
	if s.cfg.PaymentTermDays <= 0 {
		s.cfg.PaymentTermDays = billing.DefaultPaymentTermDays
	}
	s.allocator = billing.NewNumberAllocator(s.cfg.NumberPrefix)
	s.calculator = billing.TaxCalculator{Rate: s.cfg.TaxRate}
	return s
}

func (s *InvoiceService) now() time.Time {
	return s.clock().In(s.cfg.Location)
}

// CreateDirectInvoice issues a VENTA invoice on behalf of a seller.
// Only actors with the VENDEDOR role may issue direct sales.
func (s *InvoiceService) CreateDirectInvoice(ctx context.Context, actorID string, input CreateDirectInvoiceInput) (_ *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create_direct", attribute.String("actor.id", actorID))
	defer func() { telemetry.EndSpan(span, err) }()

	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, notFoundAs(err, "ACTOR_NOT_FOUND", "actor not found")
	}
	if !actor.Role.CanIssueDirectInvoice() {
		return nil, shared.NewForbiddenError("DIRECT_SALE_FORBIDDEN",
			fmt.Sprintf("role %s may not issue direct-sale invoices", actor.Role))
	}

	customer, err := s.users.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, notFoundAs(err, "CUSTOMER_NOT_FOUND", "customer not found")
	}

	if err := validateDirectLines(input); err != nil {
		return nil, err
	}

	found, err := s.items.FindByIDs(ctx, distinctItemIDs(input.Lines))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog items: %w", err)
	}
	items := catalog.IndexByID(found)
	if len(items) != len(distinctItemIDs(input.Lines)) {
		return nil, ErrItemsNotFound
	}

	lines := make([]billing.InvoiceLine, 0, len(input.Lines))
	amounts := make([]billing.LineAmount, 0, len(input.Lines))
	for _, in := range input.Lines {
		line, err := billing.NewInvoiceLine(in.ItemID, items[in.ItemID].Name, in.Quantity, in.UnitPrice, in.Notes)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
		amounts = append(amounts, billing.LineAmount{Quantity: in.Quantity, UnitPrice: in.UnitPrice})
	}

	totals, err := s.calculator.Compute(amounts, input.Tax)
	if err != nil {
		return nil, err
	}

	invoice, err := s.issue(ctx, nil, func(_ TransactionalRepositories, number string, now time.Time) (*billing.Invoice, error) {
		return billing.NewDirectSaleInvoice(billing.IssueParams{
			Number:          number,
			CustomerID:      customer.ID,
			IssuedAt:        now,
			Totals:          totals,
			Lines:           lines,
			Description:     input.Description,
			PaymentTermDays: s.cfg.PaymentTermDays,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("direct-sale invoice issued",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.Number),
		zap.String("actor_id", actor.ID),
		zap.String("customer_id", customer.ID),
		zap.String("total", invoice.Total.String()),
	)

	s.afterIssue(ctx, invoice, actor.ID)

	resp := ToInvoiceResponse(invoice, map[string]identity.User{customer.ID: *customer}, items)
	return &resp, nil
}

// DeriveInvoiceFromOrder issues the PEDIDO invoice of an order. The order row
// is locked for the duration of the transaction, and an order may carry at
// most one invoice. When actorID is empty the order's customer is recorded
// as the audit actor.
func (s *InvoiceService) DeriveInvoiceFromOrder(ctx context.Context, actorID string, orderID int64) (_ *InvoiceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "derive_from_order", attribute.Int64("order.id", orderID))
	defer func() { telemetry.EndSpan(span, err) }()

	var customerID string

	onDuplicate := func(ctx context.Context) error {
		exists, err := s.invoices.ExistsByOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("failed to check existing invoice: %w", err)
		}
		if exists {
			return ErrOrderInvoicedTwice
		}
		return nil
	}

	invoice, err := s.issue(ctx, onDuplicate, func(repos TransactionalRepositories, number string, now time.Time) (*billing.Invoice, error) {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return nil, notFoundAs(err, "ORDER_NOT_FOUND", "order not found")
		}
		if order.HasInvoice() {
			return nil, ErrInvoiceAlreadyExists
		}
		if s.cfg.RequireAuthorizedOrder && !order.Status.IsApproved() {
			return nil, ErrOrderNotAuthorized
		}
		customerID = order.CustomerID

		lines := make([]billing.InvoiceLine, 0, len(order.Lines))
		for _, l := range order.Lines {
			lines = append(lines, billing.InvoiceLine{
				ItemID:    l.ItemID,
				ItemName:  l.ItemName,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
				Subtotal:  l.LineSubtotal(),
				Notes:     l.Notes,
				State:     billing.RecordStateActive,
			})
		}

		return billing.NewOrderInvoice(order.ID, billing.IssueParams{
			Number:          number,
			CustomerID:      order.CustomerID,
			IssuedAt:        now,
			Totals:          s.calculator.FromSubtotal(order.LinesSubtotal(), nil),
			Lines:           lines,
			Description:     fmt.Sprintf("Invoice generated automatically from order #%d", order.ID),
			PaymentTermDays: s.cfg.PaymentTermDays,
		})
	})
	if err != nil {
		return nil, err
	}

	auditActor := actorID
	if auditActor == "" {
		auditActor = customerID
	}

	s.logger.Info("order invoice issued",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("invoice_number", invoice.Number),
		zap.Int64("order_id", orderID),
		zap.String("actor_id", auditActor),
		zap.String("total", invoice.Total.String()),
	)

	s.afterIssue(ctx, invoice, auditActor)

	resp := s.hydrate(ctx, []billing.Invoice{*invoice})
	return &resp[0], nil
}

type buildInvoiceFunc func(repos TransactionalRepositories, number string, now time.Time) (*billing.Invoice, error)

// issue allocates a number and inserts the invoice built by build in one
// transaction. A unique-key collision rolls the transaction back and the
// whole unit is retried, up to MaxAllocationAttempts. onDuplicate may turn a
// collision into a final error.
func (s *InvoiceService) issue(ctx context.Context, onDuplicate func(context.Context) error, build buildInvoiceFunc) (*billing.Invoice, error) {
	for attempt := 1; ; attempt++ {
		var created *billing.Invoice
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			now := s.now()
			number, err := s.allocator.Next(ctx, repos.InvoiceRepo(), now)
			if err != nil {
				return err
			}
			invoice, err := build(repos, number, now)
			if err != nil {
				return err
			}
			if err := repos.InvoiceRepo().Create(ctx, invoice); err != nil {
				return err
			}
			invoice.RaiseIssued()
			created = invoice
			return nil
		})
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, shared.ErrDuplicateKey) {
			return nil, err
		}

		if onDuplicate != nil {
			if derr := onDuplicate(ctx); derr != nil {
				return nil, derr
			}
		}
		if attempt >= s.cfg.MaxAllocationAttempts {
			s.logger.Error("invoice number allocation exhausted retries",
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return nil, ErrNumberRetryExhausted.WithCause(err)
		}

		s.metrics.RecordAllocationRetry(ctx)
		s.logger.Warn("invoice number collision, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}

// afterIssue runs the post-commit side effects of a new invoice
func (s *InvoiceService) afterIssue(ctx context.Context, invoice *billing.Invoice, actorID string) {
	s.metrics.RecordInvoiceIssued(ctx, invoice.Type, invoice.Total)
	s.recordAudit(ctx, actorID, audit.ActionInsert, invoice.ID, nil, ToInvoiceResponse(invoice, nil, nil))
	s.publishEvents(ctx, invoice)
}

// recordAudit appends an audit record. Failures are logged and swallowed:
// the audited write has already been committed.
func (s *InvoiceService) recordAudit(ctx context.Context, actorID string, action audit.Action, invoiceID int64, before, after any) {
	if s.auditSink == nil {
		return
	}
	if err := s.auditSink.LogAction(ctx, actorID, action, AuditEntityInvoice, strconv.FormatInt(invoiceID, 10), before, after); err != nil {
		s.metrics.RecordAuditFailure(ctx)
		s.logger.Error("failed to record audit entry",
			zap.String("action", string(action)),
			zap.Int64("invoice_id", invoiceID),
			zap.String("actor_id", actorID),
			zap.Error(err),
		)
	}
}

// publishEvents hands pending invoice events to the publisher; failures are logged only
func (s *InvoiceService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
	events := invoice.PullDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish invoice events",
			zap.Int64("invoice_id", invoice.ID),
			zap.Error(err),
		)
	}
}

func validateDirectLines(input CreateDirectInvoiceInput) error {
	if len(input.Lines) == 0 {
		return shared.NewValidationError("EMPTY_INVOICE", "at least one line is required")
	}
	for i, l := range input.Lines {
		if l.ItemID <= 0 {
			return shared.NewValidationError("INVALID_ITEM_ID", fmt.Sprintf("line %d: item id must be a positive number", i+1))
		}
		if l.Quantity <= 0 {
			return shared.NewValidationError("INVALID_QUANTITY", fmt.Sprintf("line %d: quantity must be positive", i+1))
		}
		if !l.UnitPrice.IsPositive() {
			return shared.NewValidationError("INVALID_UNIT_PRICE", fmt.Sprintf("line %d: unit price must be positive", i+1))
		}
	}
	return nil
}

func distinctItemIDs(lines []CreateInvoiceLineInput) []int64 {
	seen := make(map[int64]struct{}, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ItemID]; ok {
			continue
		}
		seen[l.ItemID] = struct{}{}
		ids = append(ids, l.ItemID)
	}
	return ids
}

// notFoundAs narrows a repository not-found into a specific error; other errors pass through
func notFoundAs(err error, code, message string) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError(code, message)
	}
	return err
}
