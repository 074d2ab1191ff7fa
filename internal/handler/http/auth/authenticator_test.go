package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authservice "content-service/internal/service/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestBearerAuthenticator(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		wantErr error
	}{
		{"valid", "Bearer abc.def.ghi", nil},
		{"lowercase scheme", "bearer token", nil},
		{"empty", "", ErrMissingCredentials},
		{"basic scheme", "Basic dXNlcjpwYXNz", ErrMissingCredentials},
		{"scheme only", "Bearer", ErrMissingCredentials},
		{"empty token", "Bearer ", ErrMalformedCredentials},
		{"token with space", "Bearer abc def", ErrMalformedCredentials},
		{"control char", "Bearer abc\x01", ErrMalformedCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := BearerAuthenticator{}.Authenticate(context.Background(), tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Zero(t, id.AuthorID)
		})
	}
}

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTAuthenticator(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	authn := NewJWTAuthenticator(testSecret)
	authn.now = func() time.Time { return now }

	valid := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	id, err := authn.Authenticate(context.Background(), "Bearer "+valid)
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "42", AuthorID: 42}, id)

	named := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	id, err = authn.Authenticate(context.Background(), "Bearer "+named)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Subject)
	assert.Zero(t, id.AuthorID)

	failures := map[string]string{
		"expired": signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "1", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		}),
		"no exp": signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{Subject: "1"}),
		"no sub": signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}),
		"wrong secret": signed(t, jwt.SigningMethodHS256, []byte("another-secret-another-secret-xx"), jwt.RegisteredClaims{
			Subject: "1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}),
		"wrong alg": signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.RegisteredClaims{
			Subject: "1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}),
		"garbage": "not-a-jwt",
	}
	for name, tok := range failures {
		t.Run(name, func(t *testing.T) {
			_, err := authn.Authenticate(context.Background(), "Bearer "+tok)
			assert.Error(t, err)
		})
	}

	_, err = authn.Authenticate(context.Background(), "")
	assert.True(t, errors.Is(err, ErrMissingCredentials))
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(testSecret, time.Hour)
	issuer.now = func() time.Time { return now }

	tok, exp, err := issuer.Issue(authservice.Principal{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	authn := NewJWTAuthenticator(testSecret)
	authn.now = func() time.Time { return now.Add(30 * time.Minute) }
	id, err := authn.Authenticate(context.Background(), "Bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.AuthorID)

	authn.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = authn.Authenticate(context.Background(), "Bearer "+tok)
	assert.Error(t, err)
}
