package content

import (
	"net/http"

	"content-service/internal/common/pagination"
	"content-service/internal/handler/http/respond"
	"content-service/internal/repository"
	contentUC "content-service/internal/usecase/content"
)

// ListHandler serves GET /content.
type ListHandler struct {
	Svc           *contentUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP lists content items
// @Summary      List content
// @Description  Returns every item in insertion order. With page or limit the response is a paginated envelope.
// @Tags         content
// @Produce      json
// @Param        tag   query string false "Exact tag filter"
// @Param        q     query string false "Case-insensitive search in title and content"
// @Param        page  query int    false "Page number (1-based)"
// @Param        limit query int    false "Items per page"
// @Success      200 {array} ItemDTO
// @Failure      400 {object} map[string]string "invalid pagination parameters"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /content [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params, err := pagination.ParseQuery(q, h.PaginationCfg)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	filter := repository.ContentFilter{Tag: q.Get("tag"), Query: q.Get("q")}

	if !params.Requested {
		items, err := h.Svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, SerializeMany(items))
		return
	}

	items, total, err := h.Svc.ListPage(r.Context(), filter, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK,
		pagination.NewResponse(SerializeMany(items), pagination.NewMetadata(params, total)))
}
