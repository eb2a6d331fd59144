// Package report manages the sample-report layout: ordered sections gated by
// access tier, each holding inline-stored documents up to a per-section cap.
package report

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// SectionRepository is the public-store surface for report sections.
type SectionRepository interface {
	FindAll(ctx context.Context) ([]domain.ReportSection, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ReportSection, error)
	Create(ctx context.Context, section *domain.ReportSection) error
	Update(ctx context.Context, section *domain.ReportSection) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentRepository is the public-store surface for report documents.
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ReportDocument, error)
	FindBySection(ctx context.Context, sectionID uuid.UUID) ([]domain.ReportDocument, error)
	CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error)
	Create(ctx context.Context, doc *domain.ReportDocument) error
	Update(ctx context.Context, doc *domain.ReportDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySection(ctx context.Context, sectionID uuid.UUID) (int, error)
}

// CreateSectionRequest adds a slot to the report layout.
type CreateSectionRequest struct {
	Title        string  `json:"title" validate:"required,min=1,max=255"`
	Description  *string `json:"description,omitempty"`
	AccessTier   string  `json:"access_tier" validate:"required"`
	DisplayOrder int     `json:"display_order" validate:"gte=0"`
	IsActive     bool    `json:"is_active"`
}

// UpdateSectionRequest edits a section. Nil fields are left unchanged.
type UpdateSectionRequest struct {
	Title        *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string `json:"description,omitempty"`
	AccessTier   *string `json:"access_tier,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// UploadDocumentRequest attaches a file to a section. FileContent is the
// base64 payload stored inline.
type UploadDocumentRequest struct {
	SectionID   uuid.UUID `json:"section_id" validate:"required"`
	FileName    string    `json:"file_name" validate:"required,min=1,max=255"`
	ContentType string    `json:"content_type" validate:"required"`
	FileContent string    `json:"file_content" validate:"required"`
	UploadedBy  string    `json:"-"`
}

// SectionWithDocuments pairs a section with its attached files for listing.
type SectionWithDocuments struct {
	domain.ReportSection
	Documents []domain.ReportDocument `json:"documents"`
}

type Service struct {
	sections  SectionRepository
	documents DocumentRepository
	logger    logger.Logger
}

func NewService(sections SectionRepository, documents DocumentRepository, log logger.Logger) *Service {
	return &Service{sections: sections, documents: documents, logger: log}
}

// ListSections returns every section with its documents, in display order.
func (s *Service) ListSections(ctx context.Context) ([]SectionWithDocuments, error) {
	sections, err := s.sections.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "list report sections")
	}
	out := make([]SectionWithDocuments, 0, len(sections))
	for _, section := range sections {
		docs, err := s.documents.FindBySection(ctx, section.ID)
		if err != nil {
			return nil, apperrors.Wrap(err, "load section documents")
		}
		out = append(out, SectionWithDocuments{ReportSection: section, Documents: docs})
	}
	return out, nil
}

func (s *Service) GetSection(ctx context.Context, id uuid.UUID) (*domain.ReportSection, error) {
	return s.sections.FindByID(ctx, id)
}

func (s *Service) CreateSection(ctx context.Context, req *CreateSectionRequest) (*domain.ReportSection, error) {
	tier, err := domain.ParseAccessTier(req.AccessTier)
	if err != nil {
		return nil, err
	}
	section := &domain.ReportSection{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		AccessTier:   tier,
		DisplayOrder: req.DisplayOrder,
		IsActive:     req.IsActive,
	}
	if err := s.sections.Create(ctx, section); err != nil {
		return nil, apperrors.Wrap(err, "create report section")
	}
	return section, nil
}

func (s *Service) UpdateSection(ctx context.Context, id uuid.UUID, req *UpdateSectionRequest) (*domain.ReportSection, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Description != nil {
		section.Description = req.Description
	}
	if req.AccessTier != nil {
		tier, err := domain.ParseAccessTier(*req.AccessTier)
		if err != nil {
			return nil, err
		}
		section.AccessTier = tier
	}
	if req.DisplayOrder != nil {
		section.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}
	if err := s.sections.Update(ctx, section); err != nil {
		return nil, apperrors.Wrap(err, "update report section")
	}
	return section, nil
}

// DeleteSection removes a section together with its documents.
func (s *Service) DeleteSection(ctx context.Context, id uuid.UUID) error {
	if _, err := s.sections.FindByID(ctx, id); err != nil {
		return err
	}
	deleted, err := s.documents.DeleteBySection(ctx, id)
	if err != nil {
		return apperrors.Wrap(err, "delete section documents")
	}
	if err := s.sections.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete report section")
	}
	s.logger.Info("Report section deleted", map[string]interface{}{
		"section_id":        id.String(),
		"documents_deleted": deleted,
	})
	return nil
}

// UploadDocument attaches a file to a section, enforcing the per-section cap
// derived from the display order. The payload must be valid base64.
func (s *Service) UploadDocument(ctx context.Context, req *UploadDocumentRequest) (*domain.ReportDocument, error) {
	section, err := s.sections.FindByID(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		return nil, apperrors.Wrap(err, "decode document payload")
	}

	count, err := s.documents.CountBySection(ctx, section.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "count section documents")
	}
	if count >= section.DocumentCap() {
		return nil, apperrors.ErrDocumentLimitReached
	}

	doc := &domain.ReportDocument{
		ID:          uuid.New(),
		SectionID:   section.ID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		FileSize:    int64(len(raw)),
		FileContent: req.FileContent,
	}
	if req.UploadedBy != "" {
		doc.UploadedBy = &req.UploadedBy
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, apperrors.Wrap(err, "store document")
	}
	return doc, nil
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (*domain.ReportDocument, error) {
	return s.documents.FindByID(ctx, id)
}

// ReplaceDocument swaps an existing document's file in place. The slot keeps
// its id and section, so the cap rule is not re-checked.
func (s *Service) ReplaceDocument(ctx context.Context, id uuid.UUID, req *UploadDocumentRequest) (*domain.ReportDocument, error) {
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		return nil, apperrors.Wrap(err, "decode document payload")
	}

	doc.FileName = req.FileName
	doc.ContentType = req.ContentType
	doc.FileSize = int64(len(raw))
	doc.FileContent = req.FileContent
	if req.UploadedBy != "" {
		doc.UploadedBy = &req.UploadedBy
	}
	if err := s.documents.Update(ctx, doc); err != nil {
		return nil, apperrors.Wrap(err, "replace document")
	}
	return doc, nil
}

func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if _, err := s.documents.FindByID(ctx, id); err != nil {
		return err
	}
	return s.documents.Delete(ctx, id)
}
