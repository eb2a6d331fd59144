package article

import (
	"context"
	"testing"
	"time"

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

func (m *MockRepository) FindAll(ctx context.Context) ([]domain.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockRepository) FindActive(ctx context.Context) ([]domain.Article, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Article), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, article *domain.Article) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFlags struct {
	mock.Mock
}

func (m *MockFlags) ArticlesEnabled(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo *MockRepository, flags *MockFlags) *Service {
	return NewService(repo, flags, logger.NewNop())
}

func draftArticle() *domain.Article {
	return &domain.Article{
		ID:       uuid.New(),
		Title:    "Dubai Marina Outlook",
		Slug:     "dubai-marina-outlook",
		Content:  "Supply is tightening.",
		IsActive: false,
	}
}

func TestListPublicReturnsActiveArticles(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	flags.On("ArticlesEnabled", mock.Anything).Return(true, nil)
	repo.On("FindActive", mock.Anything).Return([]domain.Article{*draftArticle()}, nil)

	articles, err := svc.ListPublic(context.Background())

	require.NoError(t, err)
	assert.Len(t, articles, 1)
	repo.AssertExpectations(t)
}

func TestListPublicGatedOnGlobalFlag(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	flags.On("ArticlesEnabled", mock.Anything).Return(false, nil)

	_, err := svc.ListPublic(context.Background())

	assert.ErrorIs(t, err, apperrors.ErrArticlesDisabled)
	repo.AssertNotCalled(t, "FindActive", mock.Anything)
}

func TestGetPublicBySlugHidesDrafts(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	flags.On("ArticlesEnabled", mock.Anything).Return(true, nil)
	repo.On("FindBySlug", mock.Anything, "dubai-marina-outlook").Return(draftArticle(), nil)

	_, err := svc.GetPublicBySlug(context.Background(), "dubai-marina-outlook")

	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
}

func TestCreateActiveArticleStampsPublishedAt(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)
	fixed := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Article")).Return(nil)

	art, err := svc.Create(context.Background(), &CreateRequest{
		Title:    "Off-Plan Yields",
		Slug:     "off-plan-yields",
		Content:  "Yields are compressing.",
		IsActive: true,
	})

	require.NoError(t, err)
	require.NotNil(t, art.PublishedAt)
	assert.Equal(t, fixed, *art.PublishedAt)
}

func TestCreateDraftLeavesPublishedAtEmpty(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Article")).Return(nil)

	art, err := svc.Create(context.Background(), &CreateRequest{
		Title:   "Draft Post",
		Slug:    "draft-post",
		Content: "Not ready yet.",
	})

	require.NoError(t, err)
	assert.Nil(t, art.PublishedAt)
	assert.False(t, art.IsActive)
}

func TestCreatePropagatesSlugConflict(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Article")).
		Return(apperrors.ErrArticleSlugExists)

	_, err := svc.Create(context.Background(), &CreateRequest{
		Title:   "Duplicate",
		Slug:    "dubai-marina-outlook",
		Content: "Same slug.",
	})

	assert.ErrorIs(t, err, apperrors.ErrArticleSlugExists)
}

func TestSetActiveStampsFirstPublication(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)
	fixed := time.Date(2026, time.August, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	draft := draftArticle()
	repo.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
	repo.On("Update", mock.Anything, draft).Return(nil)

	art, err := svc.SetActive(context.Background(), draft.ID, true)

	require.NoError(t, err)
	assert.True(t, art.IsActive)
	require.NotNil(t, art.PublishedAt)
	assert.Equal(t, fixed, *art.PublishedAt)
}

func TestSetActiveKeepsOriginalPublication(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	first := time.Date(2026, time.June, 1, 8, 0, 0, 0, time.UTC)
	published := draftArticle()
	published.IsActive = true
	published.PublishedAt = &first
	repo.On("FindByID", mock.Anything, published.ID).Return(published, nil)
	repo.On("Update", mock.Anything, published).Return(nil)

	// deactivate then reactivate must not move the stamp
	art, err := svc.SetActive(context.Background(), published.ID, false)
	require.NoError(t, err)
	assert.False(t, art.IsActive)

	art, err = svc.SetActive(context.Background(), published.ID, true)
	require.NoError(t, err)
	require.NotNil(t, art.PublishedAt)
	assert.Equal(t, first, *art.PublishedAt)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	existing := draftArticle()
	repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	title := "Dubai Marina Outlook, Revised"
	art, err := svc.Update(context.Background(), existing.ID, &UpdateRequest{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, title, art.Title)
	assert.Equal(t, "dubai-marina-outlook", art.Slug)
}

func TestDeleteMissingArticle(t *testing.T) {
	repo := new(MockRepository)
	flags := new(MockFlags)
	svc := newTestService(repo, flags)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrArticleNotFound)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, apperrors.ErrArticleNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, id)
}
