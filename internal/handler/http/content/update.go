package content

import (
	"errors"
	"net/http"

	"content-service/internal/handler/http/respond"
	contentUC "content-service/internal/usecase/content"
)

// UpdateHandler serves PUT /content/{id}.
type UpdateHandler struct{ Svc *contentUC.Service }

// ServeHTTP partially updates a content item
// @Summary      Update content
// @Description  Applies only title, content (or body) and tags. Other keys are ignored.
// @Tags         content
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id   path int           true "Content ID"
// @Param        item body updateRequest true "Fields to change"
// @Success      200 {object} ItemDTO
// @Failure      400 {object} map[string]string "no updatable field"
// @Failure      401 {object} map[string]string "missing or malformed bearer token"
// @Failure      404 {object} map[string]string "content not found"
// @Failure      429 {object} map[string]string "rate limit exceeded"
// @Router       /content/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	// existence is reported before payload problems
	if _, err := h.Svc.Get(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	payload, ok := readBody(w, r)
	if !ok {
		return
	}
	switch out := DeserializeUpdate(payload).(type) {
	case Invalid:
		respond.Error(w, http.StatusBadRequest, errors.New(out.Reason))
	case ValidPatch:
		item, err := h.Svc.Update(r.Context(), id, out.Patch)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Serialize(item))
	}
}
