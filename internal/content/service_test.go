package content

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindAll(ctx context.Context) ([]domain.LandingPageContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandingPageContent), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.LandingPageContent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandingPageContent), args.Error(1)
}

func (m *MockRepository) FindBySection(ctx context.Context, section string) ([]domain.LandingPageContent, error) {
	args := m.Called(ctx, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandingPageContent), args.Error(1)
}

func (m *MockRepository) FindByLanguage(ctx context.Context, languageCode string) ([]domain.LandingPageContent, error) {
	args := m.Called(ctx, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandingPageContent), args.Error(1)
}

func (m *MockRepository) FindBySectionAndLanguage(ctx context.Context, section, languageCode string) ([]domain.LandingPageContent, error) {
	args := m.Called(ctx, section, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandingPageContent), args.Error(1)
}

func (m *MockRepository) FindByKey(ctx context.Context, section, languageCode, fieldKey string) (*domain.LandingPageContent, error) {
	args := m.Called(ctx, section, languageCode, fieldKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandingPageContent), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, content *domain.LandingPageContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, content *domain.LandingPageContent) error {
	args := m.Called(ctx, content)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DeleteBySectionAndLanguage(ctx context.Context, section, languageCode string) (int, error) {
	args := m.Called(ctx, section, languageCode)
	return args.Int(0), args.Error(1)
}

func TestUpsertRejectsUnknownContentType(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, logger.NewNop())

	_, err := svc.Upsert(context.Background(), &UpsertRequest{
		Section:      "hero",
		LanguageCode: "en",
		FieldKey:     "title",
		ContentType:  "markdown",
	})

	assert.ErrorIs(t, err, apperrors.ErrInvalidContentType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpsertCreatesWhenMissing(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, logger.NewNop())

	repo.On("FindByKey", mock.Anything, "hero", "en", "title").Return(nil, apperrors.ErrContentNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Upsert(context.Background(), &UpsertRequest{
		Section:      "hero",
		LanguageCode: "en",
		FieldKey:     "title",
		ContentType:  "TEXT", // case-insensitive
		Value:        "Find your next deal",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ContentText, out.ContentType)
	repo.AssertExpectations(t)
}

func TestUpsertUpdatesExisting(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, logger.NewNop())

	existing := &domain.LandingPageContent{
		ID: uuid.New(), Section: "hero", LanguageCode: "en", FieldKey: "title",
		ContentType: domain.ContentText, Value: "old",
	}
	repo.On("FindByKey", mock.Anything, "hero", "en", "title").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	out, err := svc.Upsert(context.Background(), &UpsertRequest{
		Section: "hero", LanguageCode: "en", FieldKey: "title",
		ContentType: "text", Value: "new", UpdatedBy: "admin@rensights.com",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, out.ID, "upsert must not mint a new row")
	assert.Equal(t, "new", out.Value)
	require.NotNil(t, out.UpdatedBy)
	assert.Equal(t, "admin@rensights.com", *out.UpdatedBy)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSectionMapParsesJSONWithFallback(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, logger.NewNop())

	rows := []domain.LandingPageContent{
		{FieldKey: "title", ContentType: domain.ContentText, Value: "Hello"},
		{FieldKey: "cta", ContentType: domain.ContentJSON, Value: `{"label":"Go","url":"/deals"}`},
		{FieldKey: "broken", ContentType: domain.ContentJSON, Value: `{not json`},
	}
	repo.On("FindBySectionAndLanguage", mock.Anything, "hero", "en").Return(rows, nil)

	out, err := svc.SectionMap(context.Background(), "hero", "en")

	require.NoError(t, err)
	assert.Equal(t, "Hello", out["title"])
	assert.Equal(t, map[string]interface{}{"label": "Go", "url": "/deals"}, out["cta"])
	// invalid JSON falls back to the raw string instead of failing the read
	assert.Equal(t, `{not json`, out["broken"])
}
