package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"rensadmin/internal/article"
	"rensadmin/internal/settings"
	"rensadmin/pkg/validator"
)

// ArticleHandler manages insights posts: admin CRUD plus the public read
// endpoints the app backend consumes.
type ArticleHandler struct {
	service   *article.Service
	settings  *settings.Service
	validator *validator.Validator
	logger    Logger
}

func NewArticleHandler(service *article.Service, set *settings.Service, val *validator.Validator, log Logger) *ArticleHandler {
	return &ArticleHandler{service: service, settings: set, validator: val, logger: log}
}

// ListPublic returns active articles. A 404 here means the feature is off.
func (h *ArticleHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.ListPublic(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	art, err := h.service.GetPublic(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, art)
}

func (h *ArticleHandler) GetPublicBySlug(w http.ResponseWriter, r *http.Request) {
	art, err := h.service.GetPublicBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, art)
}

// List returns every article, drafts included.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, articles)
}

func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	art, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, art)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req article.CreateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}
	art, err := h.service.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, art)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req article.UpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}
	art, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, art)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

type articleEnableRequest struct {
	Enabled bool `json:"enabled"`
}

// Enable flips one article's visibility.
func (h *ArticleHandler) Enable(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req articleEnableRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	art, err := h.service.SetActive(r.Context(), id, req.Enabled)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, art)
}

// GetEnabled reads the global articles flag.
func (h *ArticleHandler) GetEnabled(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.settings.ArticlesEnabled(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": enabled})
}

// UpdateEnabled flips the global articles flag.
func (h *ArticleHandler) UpdateEnabled(w http.ResponseWriter, r *http.Request) {
	var req articleEnableRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if _, err := h.settings.SetArticles(r.Context(), req.Enabled); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}
