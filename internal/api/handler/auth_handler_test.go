package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
	"github.com/HassaanMujtaba/auth-service/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, credentials, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, credentials, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, credentials, password)
}

func newTestContext(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if in.Username != "alice" || in.Role != domain.RoleUser {
				t.Fatalf("unexpected input: %+v", in)
			}
			user := &domain.User{
				ID:           "id-1",
				Username:     in.Username,
				Email:        in.Email,
				Role:         in.Role,
				PasswordHash: "$2a$10$should-never-leak",
			}
			return "signed-token", user, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"firstName":"Alice","lastName":"Smith","username":"alice","email":"alice@example.com","password":"secret1","role":"user"}`
	c, rec := newTestContext(t, "/api/auth/register", body)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "User registered and logged in successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}

	data, _ := resp["data"].(map[string]any)
	if data["token"] != "signed-token" {
		t.Fatalf("expected token in response, got %+v", data)
	}
	user, _ := data["user"].(map[string]any)
	if user["id"] != "id-1" || user["username"] != "alice" || user["email"] != "alice@example.com" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must never appear in the response")
	}
	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("hash leaked into response body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			t.Fatalf("service must not be reached on invalid input")
			return "", nil, nil
		},
	})

	c, _ := newTestContext(t, "/api/auth/register", `{"username":"ab","password":"123"}`)

	err := h.Register(c)
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, "/api/auth/register", `{"username":`)

	err := h.Register(c)
	if domain.KindOf(err) != domain.KindMalformedRequest {
		t.Fatalf("expected KindMalformedRequest, got %v", err)
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	})

	body := `{"firstName":"Bob","lastName":"Jones","username":"bob","email":"bob@example.com","password":"secret1","role":"user"}`
	c, _ := newTestContext(t, "/api/auth/register", body)

	err := h.Register(c)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, credentials, password string) (string, *domain.User, error) {
			if credentials != "carol@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", credentials, password)
			}
			return "signed-token", &domain.User{ID: "id-2", Username: "carol", Email: credentials, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, "/api/auth/login", `{"credentials":"carol@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data, _ := resp["data"].(map[string]any)
	user, _ := data["user"].(map[string]any)
	if user["username"] != "carol" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, credentials, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := newTestContext(t, "/api/auth/login", `{"credentials":"nobody","password":"whatever"}`)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
