package identity

import "github.com/JostinQuilca/FoodApp/internal/domain/shared"

// UserState is the record-level state of a user
type UserState string

const (
	UserStateActive   UserState = "ACTIVO"
	UserStateInactive UserState = "INACTIVO"
)

// User is a person registered on the platform: seller, administrator or client.
// Users are keyed by their national identity number (cédula), which is also
// the customer reference printed on invoices.
type User struct {
	ID    string
	Name  string
	Email string
	Role  Role
	State UserState
}

// IsActive reports whether the user record is active
func (u *User) IsActive() bool {
	return u.State == UserStateActive
}

// Actor returns the caller identity for this user
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// Actor is the identity on whose behalf an operation runs
type Actor struct {
	ID   string
	Role Role
}

// IsZero reports whether no actor was supplied
func (a Actor) IsZero() bool {
	return a.ID == ""
}

// NewUser creates a user after validating the identifying fields
func NewUser(id, name, email string, role Role) (*User, error) {
	if id == "" {
		return nil, shared.NewValidationError("INVALID_USER_ID", "user id cannot be empty")
	}
	if name == "" {
		return nil, shared.NewValidationError("INVALID_USER_NAME", "user name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("INVALID_ROLE", "unknown role: "+string(role))
	}
	return &User{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  role,
		State: UserStateActive,
	}, nil
}
