// Package credentials implements the password and token primitives behind
// the auth flows: bcrypt hashing/verification and HS256 JWT issue/verify.
package credentials

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/HassaanMujtaba/auth-service/internal/core/domain"
)

// Hash derives a one-way bcrypt hash from a plaintext password. Each call
// salts independently, so two hashes of the same password differ.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.Wrap(domain.KindHashingFailure, "Failed to hash password", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A mismatch is a false
// result, not an error; only internal bcrypt failures surface as errors.
func Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, domain.Wrap(domain.KindVerificationFailure, "Failed to compare passwords", err)
}

// Claims is the token payload. UserID is always present; Username and Role
// are carried on registration tokens only.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 tokens with a fixed TTL. The secret
// is immutable after construction.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

const defaultTTL = 24 * time.Hour

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs claims with the server secret, embedding issue and expiry
// times derived from the manager's TTL.
func (m *TokenManager) Issue(claims Claims) (string, error) {
	if len(m.secret) == 0 {
		return "", domain.E(domain.KindTokenIssuanceFailure, "Failed to generate authentication token")
	}

	now := time.Now().UTC()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", domain.Wrap(domain.KindTokenIssuanceFailure, "Failed to generate authentication token", err)
	}
	return signed, nil
}

// Verify parses token and checks its signature and expiry.
func (m *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.Wrap(domain.KindTokenExpired, "Token expired", err)
		}
		return nil, domain.Wrap(domain.KindTokenInvalid, "Invalid token", err)
	}
	if !token.Valid {
		return nil, domain.E(domain.KindTokenInvalid, "Invalid token")
	}
	return claims, nil
}

// TTL exposes the configured token lifetime.
func (m *TokenManager) TTL() time.Duration { return m.ttl }
