package models

import (
	"encoding/json"
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
)

// AuditRecordModel is the persistence model for an audit record.
// Snapshots are stored as JSON text.
type AuditRecordModel struct {
	ID         int64        `gorm:"primaryKey;autoIncrement"`
	ActorID    string       `gorm:"type:varchar(20);not null;index"`
	Action     audit.Action `gorm:"type:varchar(10);not null"`
	EntityName string       `gorm:"type:varchar(50);not null;index:idx_audit_entity,priority:1"`
	EntityID   string       `gorm:"type:varchar(50);index:idx_audit_entity,priority:2"`
	Before     *string      `gorm:"type:jsonb"`
	After      *string      `gorm:"type:jsonb"`
	OccurredAt time.Time    `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditRecordModel) TableName() string {
	return "audit_records"
}

// ToDomain converts the persistence model to a domain Record
func (m *AuditRecordModel) ToDomain() audit.Record {
	return audit.Record{
		ID:         m.ID,
		ActorID:    m.ActorID,
		Action:     m.Action,
		EntityName: m.EntityName,
		EntityID:   m.EntityID,
		Before:     rawJSON(m.Before),
		After:      rawJSON(m.After),
		OccurredAt: m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain Record
func (m *AuditRecordModel) FromDomain(r *audit.Record) {
	m.ID = r.ID
	m.ActorID = r.ActorID
	m.Action = r.Action
	m.EntityName = r.EntityName
	m.EntityID = r.EntityID
	m.Before = jsonText(r.Before)
	m.After = jsonText(r.After)
	m.OccurredAt = r.OccurredAt.UTC()
}

func jsonText(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}

func rawJSON(s *string) json.RawMessage {
	if s == nil {
		return nil
	}
	return json.RawMessage(*s)
}

// All returns every model, in dependency order, for schema creation in tests
func All() []any {
	return []any{
		&UserModel{},
		&CatalogItemModel{},
		&OrderModel{},
		&OrderLineModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
		&AuditRecordModel{},
	}
}
