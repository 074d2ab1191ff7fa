// Package auth verifies bearer credentials on protected content routes and
// issues signed tokens from POST /auth/token.
package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
)

// Authentication failures. Each message reads as a client error.
var (
	ErrMissingCredentials   = errors.New("missing bearer token")
	ErrMalformedCredentials = errors.New("malformed bearer token")
	ErrInvalidToken         = errors.New("invalid token")
)

// Identity is the authenticated caller.
type Identity struct {
	Subject string
	// AuthorID is the numeric subject, or 0 when the credential carries none.
	AuthorID int64
}

// Authenticator turns an Authorization header value into an Identity.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (Identity, error)
}

// BearerAuthenticator accepts any well-formed "Bearer <token>" header.
// Verifying the token itself is left to an upstream gateway.
type BearerAuthenticator struct{}

// Authenticate checks only the header shape.
func (BearerAuthenticator) Authenticate(_ context.Context, authorization string) (Identity, error) {
	if _, err := bearerToken(authorization); err != nil {
		return Identity{}, err
	}
	return Identity{}, nil
}

// JWTAuthenticator verifies HS256 tokens carrying exp and sub.
type JWTAuthenticator struct {
	secret []byte
	now    func() time.Time
}

// NewJWTAuthenticator creates an authenticator for tokens signed with secret.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), now: time.Now}
}

// Authenticate parses and verifies the bearer JWT.
func (a *JWTAuthenticator) Authenticate(_ context.Context, authorization string) (Identity, error) {
	raw, err := bearerToken(authorization)
	if err != nil {
		return Identity{}, err
	}

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !tok.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, errors.New("token expired")
		}
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, errors.New("invalid sub claim")
	}

	id := Identity{Subject: claims.Subject}
	if n, err := strconv.ParseInt(claims.Subject, 10, 64); err == nil && n > 0 {
		id.AuthorID = n
	}
	return id, nil
}

func bearerToken(authorization string) (string, error) {
	if authorization == "" {
		return "", ErrMissingCredentials
	}
	scheme, token, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMissingCredentials
	}
	if token == "" {
		return "", ErrMalformedCredentials
	}
	for _, r := range token {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return "", ErrMalformedCredentials
		}
	}
	return token, nil
}
