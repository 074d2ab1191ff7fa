package content

import (
	"net/http"

	"content-service/internal/handler/http/respond"
	contentUC "content-service/internal/usecase/content"
)

// DeleteHandler serves DELETE /content/{id}.
type DeleteHandler struct{ Svc *contentUC.Service }

// ServeHTTP deletes a content item
// @Summary      Delete content
// @Description  Hard delete. The id is never reused.
// @Tags         content
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Content ID"
// @Success      200 {object} map[string]string "content deleted"
// @Failure      401 {object} map[string]string "missing or malformed bearer token"
// @Failure      404 {object} map[string]string "content not found"
// @Router       /content/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "content deleted")
}
