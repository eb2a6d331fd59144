package i18n

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// TranslationRepository is the public-store surface for UI strings.
type TranslationRepository interface {
	FindAll(ctx context.Context) ([]domain.Translation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error)
	FindByLanguage(ctx context.Context, languageCode string) ([]domain.Translation, error)
	FindByKey(ctx context.Context, languageCode, namespace, key string) (*domain.Translation, error)
	ListNamespaces(ctx context.Context, languageCode string) ([]string, error)
	Create(ctx context.Context, translation *domain.Translation) error
	Update(ctx context.Context, translation *domain.Translation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranslationUpsert writes one UI string; the (language, namespace, key)
// triple decides create versus update.
type TranslationUpsert struct {
	LanguageCode   string `json:"language_code" validate:"required,language_code"`
	Namespace      string `json:"namespace" validate:"required,min=1,max=100"`
	TranslationKey string `json:"translation_key" validate:"required,min=1,max=255"`
	Value          string `json:"value" validate:"required"`
}

// SeedResult reports a bulk translation load.
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// TranslationService manages the UI strings shown by the public frontend.
type TranslationService struct {
	repo   TranslationRepository
	logger logger.Logger
}

func NewTranslationService(repo TranslationRepository, log logger.Logger) *TranslationService {
	return &TranslationService{repo: repo, logger: log}
}

func (s *TranslationService) List(ctx context.Context) ([]domain.Translation, error) {
	return s.repo.FindAll(ctx)
}

func (s *TranslationService) ListByLanguage(ctx context.Context, languageCode string) ([]domain.Translation, error) {
	return s.repo.FindByLanguage(ctx, languageCode)
}

// Namespaces lists the distinct namespaces present for a language.
func (s *TranslationService) Namespaces(ctx context.Context, languageCode string) ([]string, error) {
	return s.repo.ListNamespaces(ctx, languageCode)
}

// Upsert writes one UI string by its unique triple.
func (s *TranslationService) Upsert(ctx context.Context, req *TranslationUpsert) (*domain.Translation, bool, error) {
	existing, err := s.repo.FindByKey(ctx, req.LanguageCode, req.Namespace, req.TranslationKey)
	if err != nil && !errors.Is(err, apperrors.ErrTranslationNotFound) {
		return nil, false, apperrors.Wrap(err, "look up translation")
	}

	if existing != nil {
		existing.Value = req.Value
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, false, apperrors.Wrap(err, "update translation")
		}
		return existing, false, nil
	}

	row := &domain.Translation{
		ID:             uuid.New(),
		LanguageCode:   req.LanguageCode,
		Namespace:      req.Namespace,
		TranslationKey: req.TranslationKey,
		Value:          req.Value,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, false, apperrors.Wrap(err, "create translation")
	}
	return row, true, nil
}

// UpdateValue edits an existing string by id.
func (s *TranslationService) UpdateValue(ctx context.Context, id uuid.UUID, value string) (*domain.Translation, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row.Value = value
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperrors.Wrap(err, "update translation")
	}
	return row, nil
}

func (s *TranslationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// SeedBulk loads a batch of strings with upsert semantics, typically from a
// frontend locale export. Partial input failures abort the load.
func (s *TranslationService) SeedBulk(ctx context.Context, items []TranslationUpsert) (*SeedResult, error) {
	result := &SeedResult{}
	for i := range items {
		_, created, err := s.Upsert(ctx, &items[i])
		if err != nil {
			return nil, apperrors.Wrap(err, "seed translations")
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	s.logger.Info("Translations seeded", map[string]interface{}{
		"created": result.Created,
		"updated": result.Updated,
	})
	return result, nil
}
