package deal

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

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deal), args.Error(1)
}

func (m *MockRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Deal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockRepository) FindByStatus(ctx context.Context, status domain.DealStatus, filter ListFilter) ([]domain.Deal, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockRepository) CountByStatus(ctx context.Context, status domain.DealStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindPendingSince(ctx context.Context, since time.Time) ([]domain.Deal, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockRepository) CountPendingSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, deal *domain.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockRepository) ApproveAll(ctx context.Context, ids []uuid.UUID, approvedBy string, approvedAt time.Time) error {
	args := m.Called(ctx, ids, approvedBy, approvedAt)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo Repository) *Service {
	return NewService(repo, logger.NewNop())
}

func pendingDeal() *domain.Deal {
	return &domain.Deal{
		ID:       uuid.New(),
		Title:    "Marina tower unit",
		City:     "Dubai",
		Status:   domain.DealPending,
		IsActive: true,
	}
}

// --- Tests ---

func TestPendingTodayKeyedOnBatchDate(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	fixed := time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	midnight := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)

	// scraped last week, re-batched today: today's queue still includes it
	rebatched := *pendingDeal()
	rebatched.CreatedAt = fixed.AddDate(0, 0, -7)
	rebatched.BatchDate = fixed

	repo.On("FindPendingSince", mock.Anything, midnight).Return([]domain.Deal{rebatched}, nil)
	repo.On("CountPendingSince", mock.Anything, midnight).Return(1, nil)

	deals, err := svc.ListPendingToday(context.Background())
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, fixed, deals[0].BatchDate)

	count, err := svc.CountPendingToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	repo.AssertExpectations(t)
}

func TestListByStatusParsesInput(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("FindByStatus", mock.Anything, domain.DealRejected, ListFilter{}).Return([]domain.Deal{}, nil)

	_, err := svc.ListByStatus(context.Background(), "rejected", ListFilter{})
	require.NoError(t, err)

	_, err = svc.ListByStatus(context.Background(), "bogus", ListFilter{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	repo.AssertExpectations(t)
}

func TestApproveStampsApprover(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	fixed := time.Date(2026, time.July, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	deal := pendingDeal()
	repo.On("FindByID", mock.Anything, deal.ID).Return(deal, nil)
	repo.On("Update", mock.Anything, deal).Return(nil)

	out, err := svc.Approve(context.Background(), deal.ID, "admin@rensights.com")

	require.NoError(t, err)
	assert.Equal(t, domain.DealApproved, out.Status)
	require.NotNil(t, out.ApprovedAt)
	assert.Equal(t, fixed, *out.ApprovedAt)
	require.NotNil(t, out.ApprovedBy)
	assert.Equal(t, "admin@rensights.com", *out.ApprovedBy)
	repo.AssertExpectations(t)
}

func TestApproveNotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrDealNotFound)

	_, err := svc.Approve(context.Background(), id, "admin")
	assert.ErrorIs(t, err, apperrors.ErrDealNotFound)
}

func TestApproveThenRejectLastWriterWins(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	deal := pendingDeal()
	repo.On("FindByID", mock.Anything, deal.ID).Return(deal, nil)
	repo.On("Update", mock.Anything, deal).Return(nil)

	_, err := svc.Approve(context.Background(), deal.ID, "admin")
	require.NoError(t, err)

	out, err := svc.Reject(context.Background(), deal.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.DealRejected, out.Status)
	// reject leaves the earlier approval stamp in place
	assert.NotNil(t, out.ApprovedAt)
	assert.NotNil(t, out.ApprovedBy)
}

func TestBatchApprovePartialSuccess(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)
	fixed := time.Date(2026, time.July, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	a, b := pendingDeal(), pendingDeal()
	missing := uuid.New()
	ids := []uuid.UUID{a.ID, b.ID, missing}

	repo.On("FindByIDs", mock.Anything, ids).Return([]domain.Deal{*a, *b}, nil)
	repo.On("ApproveAll", mock.Anything, []uuid.UUID{a.ID, b.ID}, "admin", fixed).Return(nil)

	result, err := svc.BatchApprove(context.Background(), ids, "admin")

	require.NoError(t, err)
	require.Len(t, result.Approved, 2)
	for _, d := range result.Approved {
		assert.Equal(t, domain.DealApproved, d.Status)
		require.NotNil(t, d.ApprovedAt)
		assert.Equal(t, fixed, *d.ApprovedAt)
		assert.Equal(t, "admin", *d.ApprovedBy)
	}
	assert.Equal(t, []uuid.UUID{missing}, result.NotFound)
	repo.AssertExpectations(t)
}

func TestBatchApproveNothingFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	repo.On("FindByIDs", mock.Anything, ids).Return([]domain.Deal{}, nil)

	result, err := svc.BatchApprove(context.Background(), ids, "admin")

	require.NoError(t, err)
	assert.Empty(t, result.Approved)
	assert.Len(t, result.NotFound, 2)
	repo.AssertNotCalled(t, "ApproveAll", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestActivateIndependentOfStatus(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	deal := pendingDeal()
	deal.Status = domain.DealRejected
	deal.IsActive = false
	repo.On("FindByID", mock.Anything, deal.ID).Return(deal, nil)
	repo.On("Update", mock.Anything, deal).Return(nil)

	out, err := svc.Activate(context.Background(), deal.ID)

	require.NoError(t, err)
	assert.True(t, out.IsActive)
	assert.Equal(t, domain.DealRejected, out.Status, "activate must not touch status")

	out, err = svc.Deactivate(context.Background(), deal.ID)
	require.NoError(t, err)
	assert.False(t, out.IsActive)
}

func TestUpdateRejectsUnknownAccessTier(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	deal := pendingDeal()
	repo.On("FindByID", mock.Anything, deal.ID).Return(deal, nil)

	bad := "PLATINUM"
	_, err := svc.Update(context.Background(), deal.ID, &UpdateRequest{AccessTier: &bad})

	assert.ErrorIs(t, err, apperrors.ErrInvalidAccessTier)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	deal := pendingDeal()
	repo.On("FindByID", mock.Anything, deal.ID).Return(deal, nil)
	repo.On("Update", mock.Anything, deal).Return(nil)

	title := "Updated title"
	tier := "premium"
	out, err := svc.Update(context.Background(), deal.ID, &UpdateRequest{Title: &title, AccessTier: &tier})

	require.NoError(t, err)
	assert.Equal(t, "Updated title", out.Title)
	assert.Equal(t, domain.AccessPremium, out.AccessTier)
	assert.Equal(t, "Dubai", out.City, "untouched field must survive")
}

func TestDeleteRequiresExistingDeal(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrDealNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrDealNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
