package persistence

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/audit"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM.
// Records are append-only.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append stores a new record and assigns its id
func (r *GormAuditRepository) Append(ctx context.Context, record *audit.Record) error {
	var model models.AuditRecordModel
	model.FromDomain(record)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return translateError(err, "append audit record")
	}
	record.ID = model.ID
	return nil
}

// FindByActor lists records written by an actor, newest first
func (r *GormAuditRepository) FindByActor(ctx context.Context, actorID string, filter audit.Filter) ([]audit.Record, error) {
	return r.list(r.db.WithContext(ctx).Where("actor_id = ?", actorID), filter)
}

// FindByEntity lists records for one entity instance, newest first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, entityName, entityID string, filter audit.Filter) ([]audit.Record, error) {
	return r.list(r.db.WithContext(ctx).Where("entity_name = ? AND entity_id = ?", entityName, entityID), filter)
}

// FindAll lists all records, newest first
func (r *GormAuditRepository) FindAll(ctx context.Context, filter audit.Filter) ([]audit.Record, error) {
	return r.list(r.db.WithContext(ctx), filter)
}

func (r *GormAuditRepository) list(query *gorm.DB, filter audit.Filter) ([]audit.Record, error) {
	query = query.Order("occurred_at DESC").Order("id DESC")
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var rows []models.AuditRecordModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError(err, "list audit records")
	}
	records := make([]audit.Record, len(rows))
	for i := range rows {
		records[i] = rows[i].ToDomain()
	}
	return records, nil
}

var _ audit.Repository = (*GormAuditRepository)(nil)
