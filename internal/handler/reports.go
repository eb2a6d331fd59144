package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"

	"rensadmin/internal/middleware"
	"rensadmin/internal/report"
	"rensadmin/pkg/validator"
)

// ReportHandler manages report sections and their attached documents.
type ReportHandler struct {
	service   *report.Service
	validator *validator.Validator
	logger    Logger
}

func NewReportHandler(service *report.Service, val *validator.Validator, log Logger) *ReportHandler {
	return &ReportHandler{service: service, validator: val, logger: log}
}

func (h *ReportHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.ListSections(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sections)
}

func (h *ReportHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	section, err := h.service.GetSection(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, section)
}

func (h *ReportHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req report.CreateSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	section, err := h.service.CreateSection(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, section)
}

func (h *ReportHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req report.UpdateSectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	section, err := h.service.UpdateSection(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, section)
}

func (h *ReportHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteSection(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadDocument attaches a base64-encoded file to the section in the path.
func (h *ReportHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req report.UploadDocumentRequest
	if err := decodeJSONMax(w, r, &req, maxDocumentBytes); err != nil {
		return
	}
	req.SectionID = sectionID
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		req.UploadedBy = email
	}

	doc, err := h.service.UploadDocument(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

type replaceDocumentRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
	FileContent string `json:"file_content" validate:"required"`
}

// ReplaceDocument swaps the file held by an existing document slot.
func (h *ReportHandler) ReplaceDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req replaceDocumentRequest
	if err := decodeJSONMax(w, r, &req, maxDocumentBytes); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	upload := report.UploadDocumentRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileContent: req.FileContent,
	}
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		upload.UploadedBy = email
	}

	doc, err := h.service.ReplaceDocument(r.Context(), id, &upload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// DownloadDocument streams the stored file back with its original name
// and content type.
func (h *ReportHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	doc, err := h.service.GetDocument(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	raw, err := base64.StdEncoding.DecodeString(doc.FileContent)
	if err != nil {
		h.logger.Error("Stored document is not valid base64", map[string]interface{}{
			"document_id": doc.ID.String(),
			"error":       err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Stored document is corrupted")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

func (h *ReportHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteDocument(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
