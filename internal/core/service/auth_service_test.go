package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/HassaanMujtaba/auth-service/internal/core/credentials"
	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
	"github.com/HassaanMujtaba/auth-service/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Exists(_ context.Context, email, username string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[created.Username] = cloneUser(created)
	return cloneUser(created), nil
}

func registerInput(username, email string) ports.RegisterInput {
	return ports.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     email,
		Password:  "pass123",
		Role:      domain.RoleUser,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	tokens := credentials.NewTokenManager("secret", time.Hour)
	svc := NewAuthService(repo, tokens)

	token, user, err := svc.Register(context.Background(), registerInput("alice", "alice@example.com"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.ID == "" {
		t.Fatalf("expected created user with ID, got %+v", user)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user_id %q does not match created ID %q", claims.UserID, user.ID)
	}
	if claims.Username != "alice" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected registration claims: %+v", claims)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, credentials.NewTokenManager("secret", time.Hour))

	if _, _, err := svc.Register(context.Background(), registerInput("bob", "bob@example.com")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, _, err := svc.Register(context.Background(), registerInput("bob", "other@example.com"))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate username, got %v", err)
	}

	_, _, err = svc.Register(context.Background(), registerInput("other", "bob@example.com"))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists for duplicate email, got %v", err)
	}

	if len(repo.users) != 1 {
		t.Fatalf("expected a single stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Login_ByUsernameAndEmail(t *testing.T) {
	repo := newStubUserRepo()
	tokens := credentials.NewTokenManager("secret", time.Hour)
	svc := NewAuthService(repo, tokens)

	_, created, err := svc.Register(context.Background(), registerInput("carol", "carol@example.com"))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for _, identifier := range []string{"carol", "carol@example.com"} {
		token, user, err := svc.Login(context.Background(), identifier, "pass123")
		if err != nil {
			t.Fatalf("login by %q failed: %v", identifier, err)
		}
		if user.Username != "carol" {
			t.Fatalf("unexpected user: %+v", user)
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			t.Fatalf("token invalid: %v", err)
		}
		if claims.UserID != created.ID {
			t.Fatalf("token user_id %q does not match %q", claims.UserID, created.ID)
		}
		// Login tokens only assert identity.
		if claims.Username != "" || claims.Role != "" {
			t.Fatalf("login token should carry user_id only, got %+v", claims)
		}
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, credentials.NewTokenManager("secret", time.Hour))

	if _, _, err := svc.Register(context.Background(), registerInput("dave", "dave@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, wrongPass := svc.Login(context.Background(), "dave", "not-the-password")
	_, _, noUser := svc.Login(context.Background(), "nobody", "pass123")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(noUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", noUser)
	}
	if wrongPass.Error() != noUser.Error() {
		t.Fatalf("failure messages must match: %q vs %q", wrongPass.Error(), noUser.Error())
	}
}
