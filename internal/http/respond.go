package http

import (
	"errors"
	"net/http"

	"libraryapi/internal/catalog"
	"libraryapi/internal/httpx"
)

// writeServiceError maps catalog error kinds onto status codes. Reference
// failures are the caller's fault, like the original backend's BadRequest.
func writeServiceError(r *http.Request, w http.ResponseWriter, err error) {
	var verr *catalog.ValidationError
	var rerr *catalog.ReferenceNotFoundError
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", []httpx.ErrorDetail{
			{Field: verr.Field, Message: verr.Error()},
		})
	case errors.As(err, &rerr):
		httpx.JSONError(r, w, http.StatusBadRequest, "REFERENCE_NOT_FOUND", rerr.Error(), nil)
	case errors.Is(err, catalog.ErrNotFound):
		httpx.JSONError(r, w, http.StatusNotFound, "NOT_FOUND", "Record not found", nil)
	default:
		httpx.JSONError(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
