package i18n

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// DealTranslationRepository is the public-store surface for per-deal field
// translations.
type DealTranslationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.DealTranslation, error)
	FindByDeal(ctx context.Context, dealID uuid.UUID) ([]domain.DealTranslation, error)
	FindByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) ([]domain.DealTranslation, error)
	FindByKey(ctx context.Context, dealID uuid.UUID, languageCode, fieldName string) (*domain.DealTranslation, error)
	Create(ctx context.Context, translation *domain.DealTranslation) error
	Update(ctx context.Context, translation *domain.DealTranslation) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDeal(ctx context.Context, dealID uuid.UUID) (int, error)
	DeleteByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) (int, error)
}

// DealTranslationUpsert writes one translated deal field.
type DealTranslationUpsert struct {
	DealID          uuid.UUID `json:"deal_id" validate:"required"`
	LanguageCode    string    `json:"language_code" validate:"required,language_code"`
	FieldName       string    `json:"field_name" validate:"required,min=1,max=100"`
	TranslatedValue string    `json:"translated_value" validate:"required"`
}

// DealTranslationService manages localized deal fields.
type DealTranslationService struct {
	repo   DealTranslationRepository
	logger logger.Logger
}

func NewDealTranslationService(repo DealTranslationRepository, log logger.Logger) *DealTranslationService {
	return &DealTranslationService{repo: repo, logger: log}
}

func (s *DealTranslationService) ListByDeal(ctx context.Context, dealID uuid.UUID) ([]domain.DealTranslation, error) {
	return s.repo.FindByDeal(ctx, dealID)
}

func (s *DealTranslationService) ListByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) ([]domain.DealTranslation, error) {
	return s.repo.FindByDealAndLanguage(ctx, dealID, languageCode)
}

// FieldMap returns a deal's translations for one language as a
// field-name → value map.
func (s *DealTranslationService) FieldMap(ctx context.Context, dealID uuid.UUID, languageCode string) (map[string]string, error) {
	rows, err := s.repo.FindByDealAndLanguage(ctx, dealID, languageCode)
	if err != nil {
		return nil, apperrors.Wrap(err, "load deal translations")
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.FieldName] = row.TranslatedValue
	}
	return out, nil
}

// Upsert writes one translated field by its unique (deal, language, field)
// triple.
func (s *DealTranslationService) Upsert(ctx context.Context, req *DealTranslationUpsert) (*domain.DealTranslation, error) {
	existing, err := s.repo.FindByKey(ctx, req.DealID, req.LanguageCode, req.FieldName)
	if err != nil && !errors.Is(err, apperrors.ErrTranslationNotFound) {
		return nil, apperrors.Wrap(err, "look up deal translation")
	}

	if existing != nil {
		existing.TranslatedValue = req.TranslatedValue
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, apperrors.Wrap(err, "update deal translation")
		}
		return existing, nil
	}

	row := &domain.DealTranslation{
		ID:              uuid.New(),
		DealID:          req.DealID,
		LanguageCode:    req.LanguageCode,
		FieldName:       req.FieldName,
		TranslatedValue: req.TranslatedValue,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, apperrors.Wrap(err, "create deal translation")
	}
	return row, nil
}

func (s *DealTranslationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeleteByDeal removes every translation of a deal, across languages.
func (s *DealTranslationService) DeleteByDeal(ctx context.Context, dealID uuid.UUID) (int, error) {
	deleted, err := s.repo.DeleteByDeal(ctx, dealID)
	if err != nil {
		return 0, apperrors.Wrap(err, "delete deal translations")
	}
	return deleted, nil
}

// DeleteByDealAndLanguage removes a deal's translations for one language.
func (s *DealTranslationService) DeleteByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) (int, error) {
	deleted, err := s.repo.DeleteByDealAndLanguage(ctx, dealID, languageCode)
	if err != nil {
		return 0, apperrors.Wrap(err, "delete deal translations")
	}
	return deleted, nil
}
