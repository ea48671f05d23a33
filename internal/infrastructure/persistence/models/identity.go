package models

import (
	"time"

	"github.com/JostinQuilca/FoodApp/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
// The primary key is the user's national id, not a sequence.
type UserModel struct {
	ID        string             `gorm:"type:varchar(20);primaryKey"`
	Name      string             `gorm:"type:varchar(200);not null"`
	Email     string             `gorm:"type:varchar(200)"`
	Role      identity.Role      `gorm:"type:varchar(20);not null;index"`
	State     identity.UserState `gorm:"type:varchar(10);not null;default:'ACTIVO'"`
	CreatedAt time.Time          `gorm:"not null"`
	UpdatedAt time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Role:  m.Role,
		State: m.State,
	}
}

// FromDomain populates the persistence model from a domain User entity
func (m *UserModel) FromDomain(u *identity.User) {
	m.ID = u.ID
	m.Name = u.Name
	m.Email = u.Email
	m.Role = u.Role
	m.State = u.State
}

// UserModelFromDomain creates a new persistence model from a domain User entity
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
