package handler

import (
	"net/http"

	"rensadmin/internal/admin"
	"rensadmin/pkg/validator"
)

// AdminHandler serves the backend-store endpoints: users, subscriptions,
// dashboard stats, and analysis requests.
type AdminHandler struct {
	service   *admin.Service
	validator *validator.Validator
	logger    Logger
}

func NewAdminHandler(service *admin.Service, val *validator.Validator, log Logger) *AdminHandler {
	return &AdminHandler{service: service, validator: val, logger: log}
}

// --- Users ---

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListUsers(r.Context(), listParams(r))
	if err != nil {
		h.logger.Error("Failed to list users", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req admin.UserUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// DeleteUser deactivates the account; the row is kept.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.service.DeactivateUser(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

// --- Subscriptions ---

func (h *AdminHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListSubscriptions(r.Context(), listParams(r))
	if err != nil {
		h.logger.Error("Failed to list subscriptions", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *AdminHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sub, err := h.service.GetSubscription(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

func (h *AdminHandler) CancelSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	sub, err := h.service.CancelSubscription(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// --- Dashboard ---

func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard stats", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// --- Analysis requests ---

func (h *AdminHandler) ListAnalysisRequests(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ListAnalysisRequests(r.Context(), listParams(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *AdminHandler) GetAnalysisRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	req, err := h.service.GetAnalysisRequest(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type analysisStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *AdminHandler) UpdateAnalysisStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req analysisStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	out, err := h.service.UpdateAnalysisStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *AdminHandler) RefreshAnalysisResult(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.service.RefreshAnalysisResult(r.Context(), id)
	if err != nil {
		h.logger.Error("Analysis refresh failed", map[string]interface{}{
			"request_id": id.String(),
			"error":      err.Error(),
		})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}
