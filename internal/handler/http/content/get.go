package content

import (
	"net/http"

	"content-service/internal/handler/http/respond"
	contentUC "content-service/internal/usecase/content"
)

// GetHandler serves GET /content/{id}.
type GetHandler struct{ Svc *contentUC.Service }

// ServeHTTP returns one content item
// @Summary      Get content
// @Tags         content
// @Produce      json
// @Param        id path int true "Content ID"
// @Success      200 {object} ItemDTO
// @Failure      404 {object} map[string]string "content not found"
// @Router       /content/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	item, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, Serialize(item))
}
