package service

import (
	"context"
	"errors"
	"time"

	"github.com/HassaanMujtaba/auth-service/internal/core/credentials"
	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
	"github.com/HassaanMujtaba/auth-service/internal/core/ports"
)

// AuthService implements registration and login over a user repository.
type AuthService struct {
	repo   ports.UserRepository
	tokens *credentials.TokenManager
}

func NewAuthService(repo ports.UserRepository, tokens *credentials.TokenManager) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register creates a new user and returns a token asserting its identity.
// The uniqueness pre-check and the store's unique index both map to
// domain.ErrUserExists, so a lost race reads the same as a duplicate.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	exists, err := s.repo.Exists(ctx, in.Email, in.Username)
	if err != nil {
		return "", nil, err
	}
	if exists {
		return "", nil, domain.ErrUserExists
	}

	hash, err := credentials.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(credentials.Claims{
		UserID:   created.ID,
		Username: created.Username,
		Role:     created.Role,
	})
	if err != nil {
		return "", nil, err
	}

	return token, created, nil
}

// Login authenticates by username or email. A missing user and a wrong
// password return the identical domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, creds, password string) (string, *domain.User, error) {
	user, err := s.repo.FindByIdentifier(ctx, creds)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	match, err := credentials.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, err
	}
	if !match {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(credentials.Claims{UserID: user.ID})
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}
