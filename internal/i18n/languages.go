// Package i18n manages the supported locales and the translated strings
// served to the public frontend: per-language UI translations and per-deal
// field translations.
package i18n

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// LanguageRepository is the public-store surface for locales. SetDefault
// clears the previous default and sets the new one in one transaction.
type LanguageRepository interface {
	FindAll(ctx context.Context) ([]domain.Language, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Language, error)
	FindByCode(ctx context.Context, code string) (*domain.Language, error)
	Create(ctx context.Context, language *domain.Language) error
	Update(ctx context.Context, language *domain.Language) error
	SetDefault(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateLanguageRequest registers a new locale.
type CreateLanguageRequest struct {
	Code       string  `json:"code" validate:"required,language_code"`
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	NativeName *string `json:"native_name,omitempty"`
	IsEnabled  bool    `json:"is_enabled"`
}

// UpdateLanguageRequest edits a locale's display names.
type UpdateLanguageRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	NativeName *string `json:"native_name,omitempty"`
}

// LanguageService enforces the locale rules: codes are unique, exactly one
// default exists, and the default can be neither disabled nor deleted.
type LanguageService struct {
	repo   LanguageRepository
	logger logger.Logger
}

func NewLanguageService(repo LanguageRepository, log logger.Logger) *LanguageService {
	return &LanguageService{repo: repo, logger: log}
}

func (s *LanguageService) List(ctx context.Context) ([]domain.Language, error) {
	return s.repo.FindAll(ctx)
}

func (s *LanguageService) Get(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	return s.repo.FindByID(ctx, id)
}

// Create registers a locale. A duplicate code is a conflict.
func (s *LanguageService) Create(ctx context.Context, req *CreateLanguageRequest) (*domain.Language, error) {
	code := strings.ToLower(strings.TrimSpace(req.Code))
	existing, err := s.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrLanguageNotFound) {
		return nil, apperrors.Wrap(err, "look up language code")
	}
	if existing != nil {
		return nil, apperrors.ErrLanguageExists
	}

	lang := &domain.Language{
		ID:         uuid.New(),
		Code:       code,
		Name:       req.Name,
		NativeName: req.NativeName,
		IsEnabled:  req.IsEnabled,
	}
	if err := s.repo.Create(ctx, lang); err != nil {
		return nil, apperrors.Wrap(err, "create language")
	}
	s.logger.Info("Language created", map[string]interface{}{"code": code})
	return lang, nil
}

func (s *LanguageService) Update(ctx context.Context, id uuid.UUID, req *UpdateLanguageRequest) (*domain.Language, error) {
	lang, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		lang.Name = *req.Name
	}
	if req.NativeName != nil {
		lang.NativeName = req.NativeName
	}
	if err := s.repo.Update(ctx, lang); err != nil {
		return nil, apperrors.Wrap(err, "update language")
	}
	return lang, nil
}

// Toggle flips the enabled flag. Disabling the default language is refused.
func (s *LanguageService) Toggle(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	lang, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lang.IsDefault && lang.IsEnabled {
		return nil, apperrors.ErrDefaultLanguage
	}
	lang.IsEnabled = !lang.IsEnabled
	if err := s.repo.Update(ctx, lang); err != nil {
		return nil, apperrors.Wrap(err, "toggle language")
	}
	return lang, nil
}

// SetDefault promotes a language to the single default. A disabled language
// cannot become the default.
func (s *LanguageService) SetDefault(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	lang, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lang.IsEnabled {
		return nil, apperrors.ErrLanguageDisabled
	}
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return nil, apperrors.Wrap(err, "set default language")
	}
	lang.IsDefault = true
	return lang, nil
}

// Delete removes a locale. The default language cannot be deleted.
func (s *LanguageService) Delete(ctx context.Context, id uuid.UUID) error {
	lang, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if lang.IsDefault {
		return apperrors.ErrDefaultLanguage
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete language")
	}
	s.logger.Info("Language deleted", map[string]interface{}{"code": lang.Code})
	return nil
}
