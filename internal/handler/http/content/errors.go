package content

import (
	"errors"
	"io"
	"net/http"

	"content-service/internal/domain/entity"
	"content-service/internal/handler/http/pathutil"
	"content-service/internal/handler/http/respond"
	"content-service/internal/observability/logging"
	contentUC "content-service/internal/usecase/content"
)

// parseID reads the {id} path value. Anything that is not a positive
// integer cannot name an item, so it is answered like an unknown id.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, contentUC.ErrContentNotFound)
		return 0, false
	}
	return id, true
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return nil, false
		}
		respond.Error(w, http.StatusBadRequest, errors.New("invalid request body"))
		return nil, false
	}
	return payload, true
}

// writeError maps usecase errors to status codes. Unknown errors become a
// generic 500 and are logged with secrets masked.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contentUC.ErrContentNotFound),
		errors.Is(err, contentUC.ErrInvalidContentID):
		respond.Error(w, http.StatusNotFound, contentUC.ErrContentNotFound)
	case errors.Is(err, contentUC.ErrNoUpdatableFields),
		errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, entity.ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, errors.New(reasonOf(err)))
	default:
		logging.FromContext(r.Context()).Error("content request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", respond.SanitizeError(err))
		respond.JSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
