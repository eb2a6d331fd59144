package report

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

type MockSectionRepo struct {
	mock.Mock
}

func (m *MockSectionRepo) FindAll(ctx context.Context) ([]domain.ReportSection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportSection), args.Error(1)
}

func (m *MockSectionRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ReportSection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportSection), args.Error(1)
}

func (m *MockSectionRepo) Create(ctx context.Context, section *domain.ReportSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockSectionRepo) Update(ctx context.Context, section *domain.ReportSection) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockSectionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ReportDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportDocument), args.Error(1)
}

func (m *MockDocumentRepo) FindBySection(ctx context.Context, sectionID uuid.UUID) ([]domain.ReportDocument, error) {
	args := m.Called(ctx, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReportDocument), args.Error(1)
}

func (m *MockDocumentRepo) CountBySection(ctx context.Context, sectionID uuid.UUID) (int, error) {
	args := m.Called(ctx, sectionID)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepo) Create(ctx context.Context, doc *domain.ReportDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) Update(ctx context.Context, doc *domain.ReportDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepo) DeleteBySection(ctx context.Context, sectionID uuid.UUID) (int, error) {
	args := m.Called(ctx, sectionID)
	return args.Int(0), args.Error(1)
}

func newTestService() (*Service, *MockSectionRepo, *MockDocumentRepo) {
	sections := new(MockSectionRepo)
	documents := new(MockDocumentRepo)
	return NewService(sections, documents, logger.NewNop()), sections, documents
}

func TestDocumentCapByDisplayOrder(t *testing.T) {
	gallery := domain.ReportSection{DisplayOrder: 5}
	assert.Equal(t, 8, gallery.DocumentCap())

	for _, order := range []int{0, 1, 4, 6, 100} {
		section := domain.ReportSection{DisplayOrder: order}
		assert.Equal(t, 1, section.DocumentCap(), "order %d", order)
	}
}

func TestUploadDocumentRespectsCap(t *testing.T) {
	svc, sections, documents := newTestService()

	section := &domain.ReportSection{ID: uuid.New(), DisplayOrder: 2, AccessTier: domain.AccessFree}
	sections.On("FindByID", mock.Anything, section.ID).Return(section, nil)
	documents.On("CountBySection", mock.Anything, section.ID).Return(1, nil)

	_, err := svc.UploadDocument(context.Background(), &UploadDocumentRequest{
		SectionID:   section.ID,
		FileName:    "summary.pdf",
		ContentType: "application/pdf",
		FileContent: base64.StdEncoding.EncodeToString([]byte("pdf bytes")),
	})

	assert.ErrorIs(t, err, apperrors.ErrDocumentLimitReached)
	documents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadDocumentGallerySectionHoldsEight(t *testing.T) {
	svc, sections, documents := newTestService()

	section := &domain.ReportSection{ID: uuid.New(), DisplayOrder: 5}
	sections.On("FindByID", mock.Anything, section.ID).Return(section, nil)
	documents.On("CountBySection", mock.Anything, section.ID).Return(7, nil)
	documents.On("Create", mock.Anything, mock.Anything).Return(nil)

	payload := []byte("image bytes")
	doc, err := svc.UploadDocument(context.Background(), &UploadDocumentRequest{
		SectionID:   section.ID,
		FileName:    "photo-8.jpg",
		ContentType: "image/jpeg",
		FileContent: base64.StdEncoding.EncodeToString(payload),
		UploadedBy:  "admin@rensights.com",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), doc.FileSize)
	require.NotNil(t, doc.UploadedBy)
	assert.Equal(t, "admin@rensights.com", *doc.UploadedBy)
}

func TestUploadDocumentRejectsBadBase64(t *testing.T) {
	svc, sections, documents := newTestService()

	section := &domain.ReportSection{ID: uuid.New(), DisplayOrder: 1}
	sections.On("FindByID", mock.Anything, section.ID).Return(section, nil)

	_, err := svc.UploadDocument(context.Background(), &UploadDocumentRequest{
		SectionID:   section.ID,
		FileName:    "x.pdf",
		ContentType: "application/pdf",
		FileContent: "!!! not base64 !!!",
	})

	assert.Error(t, err)
	documents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReplaceDocumentKeepsSlot(t *testing.T) {
	svc, _, documents := newTestService()

	existing := &domain.ReportDocument{ID: uuid.New(), SectionID: uuid.New(), FileName: "old.pdf"}
	documents.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	documents.On("Update", mock.Anything, existing).Return(nil)

	payload := []byte("fresh pdf bytes")
	doc, err := svc.ReplaceDocument(context.Background(), existing.ID, &UploadDocumentRequest{
		SectionID:   existing.SectionID,
		FileName:    "new.pdf",
		ContentType: "application/pdf",
		FileContent: base64.StdEncoding.EncodeToString(payload),
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, doc.ID)
	assert.Equal(t, "new.pdf", doc.FileName)
	assert.Equal(t, int64(len(payload)), doc.FileSize)
	// the cap is not re-checked when a slot is reused
	documents.AssertNotCalled(t, "CountBySection", mock.Anything, mock.Anything)
}

func TestCreateSectionRejectsUnknownTier(t *testing.T) {
	svc, sections, _ := newTestService()

	_, err := svc.CreateSection(context.Background(), &CreateSectionRequest{
		Title:      "Market overview",
		AccessTier: "VIP",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessTier)
	sections.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteSectionCascadesDocuments(t *testing.T) {
	svc, sections, documents := newTestService()

	section := &domain.ReportSection{ID: uuid.New(), DisplayOrder: 5}
	sections.On("FindByID", mock.Anything, section.ID).Return(section, nil)
	documents.On("DeleteBySection", mock.Anything, section.ID).Return(3, nil)
	sections.On("Delete", mock.Anything, section.ID).Return(nil)

	require.NoError(t, svc.DeleteSection(context.Background(), section.ID))
	documents.AssertExpectations(t)
	sections.AssertExpectations(t)
}
