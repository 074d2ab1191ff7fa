package content

import (
	"errors"
	"net/http"
	"strconv"

	"content-service/internal/handler/http/auth"
	"content-service/internal/handler/http/respond"
	contentUC "content-service/internal/usecase/content"
)

// CreateHandler serves POST /content.
type CreateHandler struct {
	Svc             *contentUC.Service
	DefaultAuthorID int64
}

// ServeHTTP creates a content item
// @Summary      Create content
// @Description  Creates an item. body is accepted as an alias of content. author_id defaults to the caller.
// @Tags         content
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        item body createRequest true "Content item"
// @Success      201 {object} ItemDTO
// @Header       201 {string} Location "/content/{id}"
// @Failure      400 {object} map[string]string "title or content missing"
// @Failure      401 {object} map[string]string "missing or malformed bearer token"
// @Failure      429 {object} map[string]string "rate limit exceeded"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /content [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	payload, ok := readBody(w, r)
	if !ok {
		return
	}

	switch out := DeserializeCreate(payload, h.authorFor(r)).(type) {
	case Invalid:
		respond.Error(w, http.StatusBadRequest, errors.New(out.Reason))
	case Valid:
		item, err := h.Svc.Create(r.Context(), out.Fields)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Location", "/content/"+strconv.FormatInt(item.ID, 10))
		respond.JSON(w, http.StatusCreated, Serialize(item))
	}
}

// authorFor prefers the numeric identity of the caller over the configured default.
func (h CreateHandler) authorFor(r *http.Request) int64 {
	if id, ok := auth.IdentityFromContext(r.Context()); ok && id.AuthorID > 0 {
		return id.AuthorID
	}
	return h.DefaultAuthorID
}
