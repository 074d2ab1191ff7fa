// Package auth validates login credentials for token issuance.
// It is independent of HTTP so the same rules apply to any caller.
package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
)

// ErrInvalidCredentials is returned for any username or password mismatch.
// It does not reveal which of the two was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// Principal is the authenticated user.
type Principal struct {
	UserID   int64
	Username string
}

// AuthProvider defines the interface for authentication providers.
type AuthProvider interface {
	// Authenticate returns the principal owning creds.
	Authenticate(ctx context.Context, creds Credentials) (Principal, error)

	// Name returns the name of this provider.
	Name() string
}

// StaticUserProvider authenticates a single configured user.
type StaticUserProvider struct {
	username string
	password string
	userID   int64
}

// NewStaticUserProvider creates a provider for one user.
func NewStaticUserProvider(username, password string, userID int64) *StaticUserProvider {
	return &StaticUserProvider{username: username, password: password, userID: userID}
}

// Authenticate compares both fields in constant time. Both comparisons always
// run so the response time does not depend on which field mismatched.
func (p *StaticUserProvider) Authenticate(_ context.Context, creds Credentials) (Principal, error) {
	if p.username == "" || p.password == "" {
		return Principal{}, ErrInvalidCredentials
	}
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return Principal{}, ErrInvalidCredentials
	}

	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(p.username))
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(p.password))
	if userMatch&passMatch != 1 {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{UserID: p.userID, Username: p.username}, nil
}

// Name returns "static".
func (p *StaticUserProvider) Name() string { return "static" }

// AuthService handles authentication business logic.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// Authenticate validates creds via the configured provider.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (Principal, error) {
	return s.provider.Authenticate(ctx, creds)
}

// GetProvider returns the current authentication provider.
func (s *AuthService) GetProvider() AuthProvider {
	return s.provider
}
