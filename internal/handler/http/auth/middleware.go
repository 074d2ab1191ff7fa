package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"content-service/internal/handler/http/respond"
	"content-service/internal/observability/logging"
)

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by Require.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// Require rejects requests that authn does not accept with 401 and passes
// the rest to next with the Identity in their context.
func Require(authn Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id, err := authn.Authenticate(r.Context(), r.Header.Get("Authorization"))
		RecordAuthDuration(time.Since(start))
		if err != nil {
			RecordAuthRequest(ResultFailure)
			logging.FromContext(r.Context()).Debug("request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"reason", err.Error())
			w.Header().Set("WWW-Authenticate", `Bearer realm="content"`)
			respond.Error(w, http.StatusUnauthorized, fmt.Errorf("unauthorized: %w", err))
			return
		}
		RecordAuthRequest(ResultSuccess)
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}
