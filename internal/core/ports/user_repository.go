package ports

import (
	"context"

	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
)

// UserRepository defines the persistence surface for user accounts.
type UserRepository interface {
	// FindByIdentifier resolves a user by username or email matching the
	// given login identifier. Returns domain.ErrUserNotFound on a miss.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)

	// Exists reports whether a user with the given email or username is
	// already stored.
	Exists(ctx context.Context, email, username string) (bool, error)

	// Create persists a new user and returns it with the server-generated
	// ID. A duplicate email or username yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
