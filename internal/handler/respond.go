// Package handler exposes the admin REST surface over mux. Handlers decode
// and validate requests, call the services, and translate service errors to
// HTTP statuses.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"rensadmin/internal/admin"
	apperrors "rensadmin/pkg/errors"
)

// Logger is the minimal logging surface handlers need.
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondValidationErrors(w http.ResponseWriter, errors map[string]string) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":             "Validation failed",
		"validation_errors": errors,
	})
}

// respondServiceError maps a service error to its HTTP status. Unknown
// errors become an opaque 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case isInvalidArgument(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case isConflict(err):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrNoAnalysisResult):
		respondError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrUserNotFound,
		apperrors.ErrSubscriptionNotFound,
		apperrors.ErrDealNotFound,
		apperrors.ErrAnalysisRequestNotFound,
		apperrors.ErrLanguageNotFound,
		apperrors.ErrTranslationNotFound,
		apperrors.ErrContentNotFound,
		apperrors.ErrSectionNotFound,
		apperrors.ErrDocumentNotFound,
		apperrors.ErrAdminNotFound,
		apperrors.ErrSettingNotFound,
		apperrors.ErrArticleNotFound,
		apperrors.ErrArticlesDisabled,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isInvalidArgument(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrInvalidStatus,
		apperrors.ErrInvalidTier,
		apperrors.ErrInvalidAccessTier,
		apperrors.ErrInvalidContentType,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, sentinel := range []error{
		apperrors.ErrLanguageExists,
		apperrors.ErrDefaultLanguage,
		apperrors.ErrLanguageDisabled,
		apperrors.ErrAdminAlreadyExists,
		apperrors.ErrDocumentLimitReached,
		apperrors.ErrArticleSlugExists,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// Body caps. Document uploads carry base64 file payloads and get the larger
// cap; everything else is small JSON.
const (
	maxBodyBytes     = 1 << 20
	maxDocumentBytes = 10 << 20
)

// decodeJSON reads a capped, strict JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return decodeJSONMax(w, r, dst, maxBodyBytes)
}

func decodeJSONMax(w http.ResponseWriter, r *http.Request, dst interface{}, max int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, max)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return err
	}
	return nil
}

// pathID parses a UUID path variable.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// listParams reads page/size/sortBy/sortDir query params.
func listParams(r *http.Request) admin.ListParams {
	params := admin.ListParams{
		SortBy:  r.URL.Query().Get("sortBy"),
		SortDir: r.URL.Query().Get("sortDir"),
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			params.Size = n
		}
	}
	return params
}
