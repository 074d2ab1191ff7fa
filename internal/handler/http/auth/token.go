package auth

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"

	"content-service/internal/handler/http/respond"
	"content-service/internal/observability/logging"
	authservice "content-service/internal/service/auth"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type loginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"your_password"`
}

type tokenResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt string `json:"expires_at" example:"2025-10-26T13:00:00Z"`
}

// TokenIssuer signs HS256 tokens accepted by JWTAuthenticator.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer whose tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token whose subject is the principal's user id.
func (i *TokenIssuer) Issue(p authservice.Principal) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(p.UserID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// TokenHandler authenticates a username and password and issues a JWT.
//
// @Summary      Issue token
// @Description  Exchanges the configured username and password for a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body loginRequest true "Login credentials"
// @Success      200 {object} tokenResponse
// @Failure      400 {object} map[string]string "invalid request body"
// @Failure      401 {object} map[string]string "invalid credentials"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /auth/token [post]
func TokenHandler(svc *authservice.AuthService, issuer *TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := logging.FromContext(r.Context())
		defer func() { RecordAuthDuration(time.Since(start)) }()

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			RecordAuthRequest(ResultFailure)
			respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
			return
		}

		principal, err := svc.Authenticate(r.Context(), authservice.Credentials{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			RecordAuthRequest(ResultFailure)
			logger.Warn("authentication failed",
				"reason", "invalid_credentials",
				"duration_ms", time.Since(start).Milliseconds())
			respond.Error(w, http.StatusUnauthorized, errors.New("unauthorized: invalid credentials"))
			return
		}

		signed, exp, err := issuer.Issue(principal)
		if err != nil {
			RecordAuthRequest(ResultFailure)
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		RecordAuthRequest(ResultSuccess)
		logger.Info("token issued",
			"user_id", principal.UserID,
			"duration_ms", time.Since(start).Milliseconds())
		respond.JSON(w, http.StatusOK, tokenResponse{
			Token:     signed,
			ExpiresAt: exp.UTC().Format(time.RFC3339),
		})
	}
}
