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

type MockLanguageRepo struct {
	mock.Mock
}

func (m *MockLanguageRepo) FindAll(ctx context.Context) ([]domain.Language, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Language), args.Error(1)
}

func (m *MockLanguageRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockLanguageRepo) FindByCode(ctx context.Context, code string) (*domain.Language, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Language), args.Error(1)
}

func (m *MockLanguageRepo) Create(ctx context.Context, language *domain.Language) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}

func (m *MockLanguageRepo) Update(ctx context.Context, language *domain.Language) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}

func (m *MockLanguageRepo) SetDefault(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLanguageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newLanguageService(repo LanguageRepository) *LanguageService {
	return NewLanguageService(repo, logger.NewNop())
}

func TestCreateLanguageDuplicateCode(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	existing := &domain.Language{ID: uuid.New(), Code: "ar"}
	repo.On("FindByCode", mock.Anything, "ar").Return(existing, nil)

	_, err := svc.Create(context.Background(), &CreateLanguageRequest{Code: "AR", Name: "Arabic"})

	assert.ErrorIs(t, err, apperrors.ErrLanguageExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLanguageNormalizesCode(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	repo.On("FindByCode", mock.Anything, "fr").Return(nil, apperrors.ErrLanguageNotFound)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := svc.Create(context.Background(), &CreateLanguageRequest{Code: " FR ", Name: "French", IsEnabled: true})

	require.NoError(t, err)
	assert.Equal(t, "fr", out.Code)
	assert.False(t, out.IsDefault, "new languages never start as default")
}

func TestToggleRefusesDisablingDefault(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	lang := &domain.Language{ID: uuid.New(), Code: "en", IsEnabled: true, IsDefault: true}
	repo.On("FindByID", mock.Anything, lang.ID).Return(lang, nil)

	_, err := svc.Toggle(context.Background(), lang.ID)

	assert.ErrorIs(t, err, apperrors.ErrDefaultLanguage)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestToggleEnablesDisabledLanguage(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	lang := &domain.Language{ID: uuid.New(), Code: "de", IsEnabled: false}
	repo.On("FindByID", mock.Anything, lang.ID).Return(lang, nil)
	repo.On("Update", mock.Anything, lang).Return(nil)

	out, err := svc.Toggle(context.Background(), lang.ID)

	require.NoError(t, err)
	assert.True(t, out.IsEnabled)
}

func TestSetDefaultRefusesDisabledLanguage(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	lang := &domain.Language{ID: uuid.New(), Code: "de", IsEnabled: false}
	repo.On("FindByID", mock.Anything, lang.ID).Return(lang, nil)

	_, err := svc.SetDefault(context.Background(), lang.ID)

	assert.ErrorIs(t, err, apperrors.ErrLanguageDisabled)
	repo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything)
}

func TestSetDefaultPromotes(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	lang := &domain.Language{ID: uuid.New(), Code: "ar", IsEnabled: true}
	repo.On("FindByID", mock.Anything, lang.ID).Return(lang, nil)
	repo.On("SetDefault", mock.Anything, lang.ID).Return(nil)

	out, err := svc.SetDefault(context.Background(), lang.ID)

	require.NoError(t, err)
	assert.True(t, out.IsDefault)
	repo.AssertExpectations(t)
}

func TestDeleteRefusesDefault(t *testing.T) {
	repo := new(MockLanguageRepo)
	svc := newLanguageService(repo)

	lang := &domain.Language{ID: uuid.New(), Code: "en", IsEnabled: true, IsDefault: true}
	repo.On("FindByID", mock.Anything, lang.ID).Return(lang, nil)

	err := svc.Delete(context.Background(), lang.ID)

	assert.ErrorIs(t, err, apperrors.ErrDefaultLanguage)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
