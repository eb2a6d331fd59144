package i18n

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

type MockTranslationRepo struct {
	mock.Mock
}

func (m *MockTranslationRepo) FindAll(ctx context.Context) ([]domain.Translation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Translation), args.Error(1)
}

func (m *MockTranslationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Translation), args.Error(1)
}

func (m *MockTranslationRepo) FindByLanguage(ctx context.Context, languageCode string) ([]domain.Translation, error) {
	args := m.Called(ctx, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Translation), args.Error(1)
}

func (m *MockTranslationRepo) FindByKey(ctx context.Context, languageCode, namespace, key string) (*domain.Translation, error) {
	args := m.Called(ctx, languageCode, namespace, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Translation), args.Error(1)
}

func (m *MockTranslationRepo) ListNamespaces(ctx context.Context, languageCode string) ([]string, error) {
	args := m.Called(ctx, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTranslationRepo) Create(ctx context.Context, translation *domain.Translation) error {
	args := m.Called(ctx, translation)
	return args.Error(0)
}

func (m *MockTranslationRepo) Update(ctx context.Context, translation *domain.Translation) error {
	args := m.Called(ctx, translation)
	return args.Error(0)
}

func (m *MockTranslationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTranslationUpsertCreatesThenUpdates(t *testing.T) {
	repo := new(MockTranslationRepo)
	svc := NewTranslationService(repo, logger.NewNop())

	repo.On("FindByKey", mock.Anything, "en", "common", "cta.title").
		Return(nil, apperrors.ErrTranslationNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	row, created, err := svc.Upsert(context.Background(), &TranslationUpsert{
		LanguageCode: "en", Namespace: "common", TranslationKey: "cta.title", Value: "Browse deals",
	})
	require.NoError(t, err)
	assert.True(t, created)

	repo.On("FindByKey", mock.Anything, "en", "common", "cta.title").Return(row, nil).Once()
	repo.On("Update", mock.Anything, row).Return(nil).Once()

	again, created, err := svc.Upsert(context.Background(), &TranslationUpsert{
		LanguageCode: "en", Namespace: "common", TranslationKey: "cta.title", Value: "See all deals",
	})
	require.NoError(t, err)
	assert.False(t, created, "second write with the same triple must update")
	assert.Equal(t, row.ID, again.ID)
	assert.Equal(t, "See all deals", again.Value)
}

func TestSeedBulkCountsCreatedAndUpdated(t *testing.T) {
	repo := new(MockTranslationRepo)
	svc := NewTranslationService(repo, logger.NewNop())

	existing := &domain.Translation{
		ID: uuid.New(), LanguageCode: "en", Namespace: "common", TranslationKey: "old", Value: "x",
	}
	repo.On("FindByKey", mock.Anything, "en", "common", "old").Return(existing, nil)
	repo.On("FindByKey", mock.Anything, "en", "common", "fresh").Return(nil, apperrors.ErrTranslationNotFound)
	repo.On("Update", mock.Anything, existing).Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.SeedBulk(context.Background(), []TranslationUpsert{
		{LanguageCode: "en", Namespace: "common", TranslationKey: "old", Value: "updated"},
		{LanguageCode: "en", Namespace: "common", TranslationKey: "fresh", Value: "created"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
}

func TestDealTranslationFieldMap(t *testing.T) {
	repo := new(MockDealTranslationRepo)
	svc := NewDealTranslationService(repo, logger.NewNop())

	dealID := uuid.New()
	rows := []domain.DealTranslation{
		{DealID: dealID, LanguageCode: "ar", FieldName: "title", TranslatedValue: "صفقة"},
		{DealID: dealID, LanguageCode: "ar", FieldName: "description", TranslatedValue: "وصف"},
	}
	repo.On("FindByDealAndLanguage", mock.Anything, dealID, "ar").Return(rows, nil)

	out, err := svc.FieldMap(context.Background(), dealID, "ar")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"title": "صفقة", "description": "وصف"}, out)
}

type MockDealTranslationRepo struct {
	mock.Mock
}

func (m *MockDealTranslationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.DealTranslation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealTranslation), args.Error(1)
}

func (m *MockDealTranslationRepo) FindByDeal(ctx context.Context, dealID uuid.UUID) ([]domain.DealTranslation, error) {
	args := m.Called(ctx, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DealTranslation), args.Error(1)
}

func (m *MockDealTranslationRepo) FindByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) ([]domain.DealTranslation, error) {
	args := m.Called(ctx, dealID, languageCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DealTranslation), args.Error(1)
}

func (m *MockDealTranslationRepo) FindByKey(ctx context.Context, dealID uuid.UUID, languageCode, fieldName string) (*domain.DealTranslation, error) {
	args := m.Called(ctx, dealID, languageCode, fieldName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DealTranslation), args.Error(1)
}

func (m *MockDealTranslationRepo) Create(ctx context.Context, translation *domain.DealTranslation) error {
	args := m.Called(ctx, translation)
	return args.Error(0)
}

func (m *MockDealTranslationRepo) Update(ctx context.Context, translation *domain.DealTranslation) error {
	args := m.Called(ctx, translation)
	return args.Error(0)
}

func (m *MockDealTranslationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDealTranslationRepo) DeleteByDeal(ctx context.Context, dealID uuid.UUID) (int, error) {
	args := m.Called(ctx, dealID)
	return args.Int(0), args.Error(1)
}

func (m *MockDealTranslationRepo) DeleteByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) (int, error) {
	args := m.Called(ctx, dealID, languageCode)
	return args.Int(0), args.Error(1)
}

func TestDealTranslationUpsertNoDuplicateTriple(t *testing.T) {
	repo := new(MockDealTranslationRepo)
	svc := NewDealTranslationService(repo, logger.NewNop())

	dealID := uuid.New()
	existing := &domain.DealTranslation{
		ID: uuid.New(), DealID: dealID, LanguageCode: "ar", FieldName: "title", TranslatedValue: "old",
	}
	repo.On("FindByKey", mock.Anything, dealID, "ar", "title").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	out, err := svc.Upsert(context.Background(), &DealTranslationUpsert{
		DealID: dealID, LanguageCode: "ar", FieldName: "title", TranslatedValue: "new",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, out.ID)
	assert.Equal(t, "new", out.TranslatedValue)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
