package shared

import "time"

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() int64
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for entities keyed by a storage-assigned
// sequence. ID is zero until the entity is first persisted.
type BaseEntity struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() int64 {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// IsPersisted reports whether the entity has been assigned an ID
func (e *BaseEntity) IsPersisted() bool {
	return e.ID != 0
}

// Touch refreshes the update timestamp
func (e *BaseEntity) Touch(now time.Time) {
	e.UpdatedAt = now
}

// NewBaseEntity creates a new, not yet persisted, base entity
func NewBaseEntity(now time.Time) BaseEntity {
	return BaseEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
