package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
	"go.uber.org/zap"
)

// DefaultPageSize bounds audit listings when the caller gives no page size
const DefaultPageSize = 50

// RecordResponse represents an audit record in responses
type RecordResponse struct {
	ID         int64           `json:"id"`
	ActorID    string          `json:"actor_id"`
	Action     string          `json:"action"`
	EntityName string          `json:"entity_name"`
	EntityID   string          `json:"entity_id"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ListFilter pages audit listings
type ListFilter struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// AuditService writes and reads the append-only audit trail
type AuditService struct {
	repo   audit.Repository
	logger *zap.Logger
	clock  func() time.Time
}

// AuditServiceOption is a functional option for configuring AuditService
type AuditServiceOption func(*AuditService)

// WithClock overrides the time source used to stamp records
func WithClock(clock func() time.Time) AuditServiceOption {
	return func(s *AuditService) {
		s.clock = clock
	}
}

// NewAuditService creates a new AuditService
func NewAuditService(repo audit.Repository, logger *zap.Logger, opts ...AuditServiceOption) *AuditService {
	s := &AuditService{
		repo:   repo,
		logger: logger,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogAction serializes the before and after values to JSON and appends a
// record. A nil value is stored as an absent snapshot.
func (s *AuditService) LogAction(ctx context.Context, actorID string, action audit.Action, entityName, entityID string, before, after any) error {
	beforeJSON, err := snapshot(before)
	if err != nil {
		return fmt.Errorf("failed to serialize audit before value: %w", err)
	}
	afterJSON, err := snapshot(after)
	if err != nil {
		return fmt.Errorf("failed to serialize audit after value: %w", err)
	}

	record, err := audit.NewRecord(actorID, action, entityName, entityID, beforeJSON, afterJSON, s.clock())
	if err != nil {
		return err
	}
	if err := s.repo.Append(ctx, record); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}

	s.logger.Debug("audit record appended",
		zap.Int64("audit_id", record.ID),
		zap.String("actor_id", actorID),
		zap.String("action", string(action)),
		zap.String("entity", entityName),
		zap.String("entity_id", entityID),
	)
	return nil
}

// ListByActor lists the records written by an actor, newest first
func (s *AuditService) ListByActor(ctx context.Context, actorID string, filter ListFilter) ([]RecordResponse, error) {
	records, err := s.repo.FindByActor(ctx, actorID, toDomainFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records by actor: %w", err)
	}
	return toResponses(records), nil
}

// ListForEntity lists the records of one entity instance, newest first
func (s *AuditService) ListForEntity(ctx context.Context, entityName, entityID string, filter ListFilter) ([]RecordResponse, error) {
	records, err := s.repo.FindByEntity(ctx, entityName, entityID, toDomainFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records by entity: %w", err)
	}
	return toResponses(records), nil
}

// ListAll lists all records, newest first
func (s *AuditService) ListAll(ctx context.Context, filter ListFilter) ([]RecordResponse, error) {
	records, err := s.repo.FindAll(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	return toResponses(records), nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	return json.Marshal(v)
}

func toDomainFilter(f ListFilter) audit.Filter {
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	return audit.Filter{Page: page, PageSize: size}
}

func toResponses(records []audit.Record) []RecordResponse {
	out := make([]RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, RecordResponse{
			ID:         r.ID,
			ActorID:    r.ActorID,
			Action:     string(r.Action),
			EntityName: r.EntityName,
			EntityID:   r.EntityID,
			Before:     r.Before,
			After:      r.After,
			OccurredAt: r.OccurredAt,
		})
	}
	return out
}

var _ audit.Sink = (*AuditService)(nil)
