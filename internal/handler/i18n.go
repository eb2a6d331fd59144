package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"rensadmin/internal/i18n"
	"rensadmin/pkg/validator"
)

// I18nHandler exposes translation management: UI strings, supported
// languages and per-deal translated fields.
type I18nHandler struct {
	translations     *i18n.TranslationService
	languages        *i18n.LanguageService
	dealTranslations *i18n.DealTranslationService
	validator        *validator.Validator
	logger           Logger
}

func NewI18nHandler(
	translations *i18n.TranslationService,
	languages *i18n.LanguageService,
	dealTranslations *i18n.DealTranslationService,
	val *validator.Validator,
	log Logger,
) *I18nHandler {
	return &I18nHandler{
		translations:     translations,
		languages:        languages,
		dealTranslations: dealTranslations,
		validator:        val,
		logger:           log,
	}
}

// --- UI translations ---

func (h *I18nHandler) ListTranslations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.translations.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *I18nHandler) ListTranslationsByLanguage(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	rows, err := h.translations.ListByLanguage(r.Context(), code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *I18nHandler) ListNamespaces(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	names, err := h.translations.Namespaces(r.Context(), code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"namespaces": names})
}

func (h *I18nHandler) UpsertTranslation(w http.ResponseWriter, r *http.Request) {
	var req i18n.TranslationUpsert
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	row, created, err := h.translations.Upsert(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, row)
}

type translationValueRequest struct {
	Value string `json:"value" validate:"required"`
}

func (h *I18nHandler) UpdateTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req translationValueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	row, err := h.translations.UpdateValue(r.Context(), id, req.Value)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *I18nHandler) DeleteTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.translations.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type seedTranslationsRequest struct {
	Translations []i18n.TranslationUpsert `json:"translations" validate:"required,min=1,dive"`
}

// SeedTranslations loads a batch of UI strings in one call. The load
// stops at the first failure.
func (h *I18nHandler) SeedTranslations(w http.ResponseWriter, r *http.Request) {
	var req seedTranslationsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	result, err := h.translations.SeedBulk(r.Context(), req.Translations)
	if err != nil {
		h.logger.Error("Translation seed failed", map[string]interface{}{"error": err.Error()})
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// --- Languages ---

func (h *I18nHandler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	rows, err := h.languages.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *I18nHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	lang, err := h.languages.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lang)
}

func (h *I18nHandler) CreateLanguage(w http.ResponseWriter, r *http.Request) {
	var req i18n.CreateLanguageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	lang, err := h.languages.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, lang)
}

func (h *I18nHandler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req i18n.UpdateLanguageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	lang, err := h.languages.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lang)
}

func (h *I18nHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	lang, err := h.languages.Toggle(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lang)
}

func (h *I18nHandler) SetDefaultLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	lang, err := h.languages.SetDefault(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lang)
}

func (h *I18nHandler) DeleteLanguage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.languages.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Deal translations ---

func (h *I18nHandler) ListDealTranslations(w http.ResponseWriter, r *http.Request) {
	dealID, ok := pathID(w, r, "dealId")
	if !ok {
		return
	}
	rows, err := h.dealTranslations.ListByDeal(r.Context(), dealID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *I18nHandler) ListDealTranslationsByLanguage(w http.ResponseWriter, r *http.Request) {
	dealID, ok := pathID(w, r, "dealId")
	if !ok {
		return
	}
	code := mux.Vars(r)["code"]
	rows, err := h.dealTranslations.ListByDealAndLanguage(r.Context(), dealID, code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// DealFieldMap returns translated field values keyed by field name, the
// shape the public frontend consumes directly.
func (h *I18nHandler) DealFieldMap(w http.ResponseWriter, r *http.Request) {
	dealID, ok := pathID(w, r, "dealId")
	if !ok {
		return
	}
	code := mux.Vars(r)["code"]
	fields, err := h.dealTranslations.FieldMap(r.Context(), dealID, code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fields)
}

func (h *I18nHandler) UpsertDealTranslation(w http.ResponseWriter, r *http.Request) {
	var req i18n.DealTranslationUpsert
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if errs := h.validator.ValidateStructured(&req); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	row, err := h.dealTranslations.Upsert(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, row)
}

func (h *I18nHandler) DeleteDealTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.dealTranslations.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *I18nHandler) DeleteDealTranslations(w http.ResponseWriter, r *http.Request) {
	dealID, ok := pathID(w, r, "dealId")
	if !ok {
		return
	}
	deleted, err := h.dealTranslations.DeleteByDeal(r.Context(), dealID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}

func (h *I18nHandler) DeleteDealTranslationsByLanguage(w http.ResponseWriter, r *http.Request) {
	dealID, ok := pathID(w, r, "dealId")
	if !ok {
		return
	}
	code := mux.Vars(r)["code"]
	deleted, err := h.dealTranslations.DeleteByDealAndLanguage(r.Context(), dealID, code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
