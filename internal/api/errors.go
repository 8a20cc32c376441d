package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tendant/simple-cms/internal/domain"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgAccessDenied            = "Access denied"
	msgInvalidToken            = "Invalid token"
	msgInvalidRequestBody      = "Invalid request body"
	msgFailedToFetchCategories = "Failed to fetch categories"
)

// knownErrors are failures whose message is safe and meaningful to return
var knownErrors = []error{
	domain.ErrDuplicateIdentity,
	domain.ErrInvalidCredentials,
	domain.ErrInvalidRole,
	domain.ErrMissingIdentityField,
	domain.ErrDuplicateCategory,
	domain.ErrMissingCategoryName,
	domain.ErrMissingCategoryFlags,
	domain.ErrInvalidContentType,
	domain.ErrInvalidCategory,
	domain.ErrMissingPayload,
	domain.ErrMissingTitle,
	domain.ErrContentNotFound,
	domain.ErrUnauthorized,
	domain.ErrForbidden,
}

func isKnown(err error) bool {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: message})
}

// writeMutationError renders a service failure on a create, update or delete
// path. Every failure is a 400 except a role rejection.
func writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	if !isKnown(err) {
		slog.Error("Request failed", "path", r.URL.Path, "err", err)
	}
	status := http.StatusBadRequest
	if errors.Is(err, domain.ErrForbidden) {
		status = http.StatusForbidden
	}
	writeError(w, r, status, err.Error())
}
