package persistence

import (
	"context"

	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
	"github.com/JostinQuilca/FoodApp/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by national id
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err, "find user")
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the users with the given ids
func (r *GormUserRepository) FindByIDs(ctx context.Context, ids []string) ([]identity.User, error) {
	if len(ids) == 0 {
		return []identity.User{}, nil
	}
	var rows []models.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translateError(err, "find users")
	}
	users := make([]identity.User, len(rows))
	for i := range rows {
		users[i] = *rows[i].ToDomain()
	}
	return users, nil
}

// Save inserts or updates a user, keyed by id
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role", "state", "updated_at"}),
	}).Create(model).Error
	return translateError(err, "save user")
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
