package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"rensadmin/internal/content"
	"rensadmin/internal/middleware"
	"rensadmin/pkg/validator"
)

// ContentHandler manages landing page copy and media references.
type ContentHandler struct {
	service   *content.Service
	validator *validator.Validator
	logger    Logger
}

func NewContentHandler(service *content.Service, val *validator.Validator, log Logger) *ContentHandler {
	return &ContentHandler{service: service, validator: val, logger: log}
}

func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	row, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *ContentHandler) ListBySection(w http.ResponseWriter, r *http.Request) {
	section := mux.Vars(r)["section"]
	rows, err := h.service.ListBySection(r.Context(), section)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *ContentHandler) ListByLanguage(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rows, err := h.service.ListByLanguage(r.Context(), code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// SectionMap returns one section's content keyed by field, with json
// typed values decoded, ready for the frontend to render.
func (h *ContentHandler) SectionMap(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fields, err := h.service.SectionMap(r.Context(), vars["section"], vars["code"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fields)
}

func (h *ContentHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req content.UpsertRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		req.UpdatedBy = email
	}

	row, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req content.UpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		req.UpdatedBy = email
	}

	row, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ContentHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	deleted, err := h.service.DeleteSection(r.Context(), vars["section"], vars["code"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
