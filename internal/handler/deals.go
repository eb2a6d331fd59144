package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"rensadmin/internal/deal"
	"rensadmin/internal/middleware"
	"rensadmin/pkg/validator"
)

type DealHandler struct {
	service   *deal.Service
	graph     *deal.Graph
	validator *validator.Validator
	logger    Logger
}

func NewDealHandler(service *deal.Service, graph *deal.Graph, val *validator.Validator, log Logger) *DealHandler {
	return &DealHandler{service: service, graph: graph, validator: val, logger: log}
}

func dealListFilter(r *http.Request) deal.ListFilter {
	filter := deal.ListFilter{
		City: r.URL.Query().Get("city"),
	}
	if v := r.URL.Query().Get("activeOnly"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.ActiveOnly = b
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}
	return filter
}

// approverEmail resolves who is acting, for approval stamps.
func approverEmail(r *http.Request) string {
	if email, ok := middleware.EmailFromContext(r.Context()); ok {
		return email
	}
	return "unknown"
}

// List filters deals by the status query parameter.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListByStatus(r.Context(), r.URL.Query().Get("status"), dealListFilter(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListPending(r.Context(), dealListFilter(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) ListPendingToday(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListPendingToday(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) CountPendingToday(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.CountPendingToday(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *DealHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListApproved(r.Context(), dealListFilter(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) ListRejected(w http.ResponseWriter, r *http.Request) {
	deals, err := h.service.ListRejected(r.Context(), dealListFilter(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, deals)
}

func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req deal.UpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	d, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *DealHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *DealHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.service.Approve(r.Context(), id, approverEmail(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

type batchApproveRequest struct {
	DealIDs []uuid.UUID `json:"deal_ids" validate:"required,min=1"`
}

// BatchApprove approves every id it can find and reports the rest; missing
// ids never fail the call.
func (h *DealHandler) BatchApprove(w http.ResponseWriter, r *http.Request) {
	var req batchApproveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	result, err := h.service.BatchApprove(r.Context(), req.DealIDs, approverEmail(r))
	if err != nil {
		h.logger.Error("Batch approval failed", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *DealHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.service.Reject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *DealHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.service.Activate(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *DealHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.service.Deactivate(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// Relations lists a deal's comparables grouped by kind.
func (h *DealHandler) Relations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	listed, recentSales, err := h.graph.Relations(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listed":       listed,
		"recent_sales": recentSales,
	})
}

// BackfillRelationships links comparables onto bare approved deals.
func (h *DealHandler) BackfillRelationships(w http.ResponseWriter, r *http.Request) {
	result, err := h.graph.Backfill(r.Context())
	if err != nil {
		h.logger.Error("Relationship backfill failed", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
