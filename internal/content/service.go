// Package content manages the editable landing-page fields. Each field is
// keyed by (section, language, field key) and carries a typed value.
package content

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// Repository is the public-store surface for landing-page content.
type Repository interface {
	FindAll(ctx context.Context) ([]domain.LandingPageContent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.LandingPageContent, error)
	FindBySection(ctx context.Context, section string) ([]domain.LandingPageContent, error)
	FindByLanguage(ctx context.Context, languageCode string) ([]domain.LandingPageContent, error)
	FindBySectionAndLanguage(ctx context.Context, section, languageCode string) ([]domain.LandingPageContent, error)
	FindByKey(ctx context.Context, section, languageCode, fieldKey string) (*domain.LandingPageContent, error)
	Create(ctx context.Context, content *domain.LandingPageContent) error
	Update(ctx context.Context, content *domain.LandingPageContent) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySectionAndLanguage(ctx context.Context, section, languageCode string) (int, error)
}

// UpsertRequest writes one landing-page field. The (section, language,
// field key) triple decides whether it creates or updates.
type UpsertRequest struct {
	Section      string `json:"section" validate:"required,min=1,max=100"`
	LanguageCode string `json:"language_code" validate:"required,language_code"`
	FieldKey     string `json:"field_key" validate:"required,min=1,max=100"`
	ContentType  string `json:"content_type" validate:"required"`
	Value        string `json:"value"`
	UpdatedBy    string `json:"-"`
}

// UpdateRequest edits an existing field by id.
type UpdateRequest struct {
	ContentType *string `json:"content_type,omitempty"`
	Value       *string `json:"value,omitempty"`
	UpdatedBy   string  `json:"-"`
}

type Service struct {
	repo   Repository
	logger logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

func (s *Service) List(ctx context.Context) ([]domain.LandingPageContent, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.LandingPageContent, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListBySection(ctx context.Context, section string) ([]domain.LandingPageContent, error) {
	return s.repo.FindBySection(ctx, section)
}

func (s *Service) ListByLanguage(ctx context.Context, languageCode string) ([]domain.LandingPageContent, error) {
	return s.repo.FindByLanguage(ctx, languageCode)
}

// SectionMap assembles a section's fields for one language into a flat
// field-key map ready for the frontend. JSON-typed values are decoded into
// nested maps; a value that fails to parse is passed through as the raw
// string rather than erroring the whole section.
func (s *Service) SectionMap(ctx context.Context, section, languageCode string) (map[string]interface{}, error) {
	rows, err := s.repo.FindBySectionAndLanguage(ctx, section, languageCode)
	if err != nil {
		return nil, apperrors.Wrap(err, "load section content")
	}
	out := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		out[row.FieldKey] = renderValue(row)
	}
	return out, nil
}

// Upsert writes a field, creating or updating by its unique triple.
func (s *Service) Upsert(ctx context.Context, req *UpsertRequest) (*domain.LandingPageContent, error) {
	contentType, err := domain.ParseContentType(req.ContentType)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByKey(ctx, req.Section, req.LanguageCode, req.FieldKey)
	if err != nil && !errors.Is(err, apperrors.ErrContentNotFound) {
		return nil, apperrors.Wrap(err, "look up content")
	}

	if existing != nil {
		existing.ContentType = contentType
		existing.Value = req.Value
		if req.UpdatedBy != "" {
			existing.UpdatedBy = &req.UpdatedBy
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, apperrors.Wrap(err, "update content")
		}
		return existing, nil
	}

	row := &domain.LandingPageContent{
		ID:           uuid.New(),
		Section:      req.Section,
		LanguageCode: req.LanguageCode,
		FieldKey:     req.FieldKey,
		ContentType:  contentType,
		Value:        req.Value,
	}
	if req.UpdatedBy != "" {
		row.UpdatedBy = &req.UpdatedBy
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, apperrors.Wrap(err, "create content")
	}
	return row, nil
}

// Update edits a field by id.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*domain.LandingPageContent, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ContentType != nil {
		contentType, err := domain.ParseContentType(*req.ContentType)
		if err != nil {
			return nil, err
		}
		row.ContentType = contentType
	}
	if req.Value != nil {
		row.Value = *req.Value
	}
	if req.UpdatedBy != "" {
		row.UpdatedBy = &req.UpdatedBy
	}
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperrors.Wrap(err, "update content")
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeleteSection removes every field of a section in one language.
func (s *Service) DeleteSection(ctx context.Context, section, languageCode string) (int, error) {
	deleted, err := s.repo.DeleteBySectionAndLanguage(ctx, section, languageCode)
	if err != nil {
		return 0, apperrors.Wrap(err, "delete section content")
	}
	s.logger.Info("Section content deleted", map[string]interface{}{
		"section":  section,
		"language": languageCode,
		"deleted":  deleted,
	})
	return deleted, nil
}

func renderValue(row domain.LandingPageContent) interface{} {
	if row.ContentType != domain.ContentJSON {
		return row.Value
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(row.Value), &parsed); err != nil {
		return row.Value
	}
	return parsed
}
