package content

import (
	"net/http"

	"content-service/internal/common/pagination"
	"content-service/internal/handler/http/auth"
	contentUC "content-service/internal/usecase/content"
)

// Config holds the handler settings that come from configuration.
type Config struct {
	Pagination      pagination.Config
	DefaultAuthorID int64
	// Limiter wraps mutating routes; nil disables rate limiting.
	Limiter func(http.Handler) http.Handler
}

// Register registers the /content routes with mux.
// Create, update and delete require authn; reads are public.
func Register(mux *http.ServeMux, svc *contentUC.Service, authn auth.Authenticator, cfg Config) {
	protect := func(h http.Handler) http.Handler {
		h = auth.Require(authn, h)
		if cfg.Limiter != nil {
			h = cfg.Limiter(h)
		}
		return h
	}

	mux.Handle("GET /content", ListHandler{Svc: svc, PaginationCfg: cfg.Pagination})
	mux.Handle("GET /content/{id}", GetHandler{Svc: svc})

	mux.Handle("POST /content", protect(CreateHandler{Svc: svc, DefaultAuthorID: cfg.DefaultAuthorID}))
	mux.Handle("PUT /content/{id}", protect(UpdateHandler{Svc: svc}))
	mux.Handle("DELETE /content/{id}", protect(DeleteHandler{Svc: svc}))
}
