package handler

import (
	"net/http"

	"rensadmin/internal/settings"
)

// SettingsHandler exposes the public-site feature flags.
type SettingsHandler struct {
	service *settings.Service
	logger  Logger
}

func NewSettingsHandler(service *settings.Service, log Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: log}
}

func (h *SettingsHandler) GetWeeklyDeals(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.service.WeeklyDealsEnabled(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

type weeklyDealsRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateWeeklyDeals toggles whether the public site rotates its weekly deals.
func (h *SettingsHandler) UpdateWeeklyDeals(w http.ResponseWriter, r *http.Request) {
	var req weeklyDealsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	h.setWeeklyDeals(w, r, req.Enabled)
}

func (h *SettingsHandler) setWeeklyDeals(w http.ResponseWriter, r *http.Request, enabled bool) {
	setting, err := h.service.SetWeeklyDeals(r.Context(), enabled)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, setting)
}
