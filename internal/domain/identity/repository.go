package identity

import "context"

// UserRepository is the read side of the user directory used by billing
type UserRepository interface {
	// FindByID finds a user by national id; returns shared.ErrNotFound if absent
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByIDs finds the users with the given ids; missing ids are skipped
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
}
