package handler

import (
	"net/http"

	"rensadmin/internal/auth"
	"rensadmin/pkg/validator"
)

type AuthHandler struct {
	service   *auth.Service
	validator *validator.Validator
	logger    Logger
}

func NewAuthHandler(service *auth.Service, val *validator.Validator, log Logger) *AuthHandler {
	return &AuthHandler{service: service, validator: val, logger: log}
}

// Login issues a JWT for valid admin credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.logger.Warn("Login failed", map[string]interface{}{"email": req.Email})
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// InitAdmin bootstraps the first admin account.
func (h *AuthHandler) InitAdmin(w http.ResponseWriter, r *http.Request) {
	var req auth.InitAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	admin, err := h.service.InitAdmin(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, admin)
}
