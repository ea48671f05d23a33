package audit

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/shared"
)

// Action represents the kind of change an audit record describes
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	// ActionDelete exists for completeness; invoices are never deleted
	ActionDelete Action = "DELETE"
)

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	switch a {
	case ActionInsert, ActionUpdate, ActionDelete:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// Record is an append-only entry describing one write performed by an actor.
// Before and After hold JSON snapshots of the changed entity; either may be empty.
type Record struct {
	ID         int64           `json:"id"`
	ActorID    string          `json:"actor_id"`
	Action     Action          `json:"action"`
	EntityName string          `json:"entity_name"`
	EntityID   string          `json:"entity_id"`
	Before     json.RawMessage `json:"before,omitempty"`
	After      json.RawMessage `json:"after,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// NewRecord creates a new audit record
func NewRecord(actorID string, action Action, entityName, entityID string, before, after json.RawMessage, occurredAt time.Time) (*Record, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, shared.NewValidationError("INVALID_AUDIT_ACTOR", "audit actor cannot be empty")
	}
	if !action.IsValid() {
		return nil, shared.NewValidationError("INVALID_AUDIT_ACTION", "invalid audit action: "+string(action))
	}
	if entityName == "" {
		return nil, shared.NewValidationError("INVALID_AUDIT_ENTITY", "audit entity name cannot be empty")
	}
	return &Record{
		ActorID:    actorID,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Before:     before,
		After:      after,
		OccurredAt: occurredAt,
	}, nil
}

// Sink receives write-side audit entries.
// Callers treat it as best effort: a failing sink never undoes the audited write.
type Sink interface {
	LogAction(ctx context.Context, actorID string, action Action, entityName, entityID string, before, after any) error
}

// Filter narrows audit queries. Zero values mean "no constraint".
type Filter struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Repository persists audit records
type Repository interface {
	// Append stores a new record; records are never updated or deleted
	Append(ctx context.Context, record *Record) error

	// FindByActor lists records written by an actor, newest first
	FindByActor(ctx context.Context, actorID string, filter Filter) ([]Record, error)

	// FindByEntity lists records for one entity instance, newest first
	FindByEntity(ctx context.Context, entityName, entityID string, filter Filter) ([]Record, error)

	// FindAll lists all records, newest first
	FindAll(ctx context.Context, filter Filter) ([]Record, error)
}
