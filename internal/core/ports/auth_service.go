package ports

import (
	"context"

	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
)

// RegisterInput carries the validated registration payload into the service.
type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Role      string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, credentials, password string) (string, *domain.User, error)
}
