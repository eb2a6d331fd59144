package deal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// fakeStore backs both the deal and relation repositories in memory so the
// graph invariants can be exercised across sequences of calls.
type fakeStore struct {
	deals     map[uuid.UUID]domain.Deal
	relations []domain.DealRelation
}

func newFakeStore(deals ...domain.Deal) *fakeStore {
	s := &fakeStore{deals: map[uuid.UUID]domain.Deal{}}
	for _, d := range deals {
		s.deals[d.ID] = d
	}
	return s
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Deal, error) {
	d, ok := s.deals[id]
	if !ok {
		return nil, apperrors.ErrDealNotFound
	}
	return &d, nil
}

func (s *fakeStore) FindByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Deal, error) {
	var out []domain.Deal
	for _, id := range ids {
		if d, ok := s.deals[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *fakeStore) FindByStatus(_ context.Context, status domain.DealStatus, filter ListFilter) ([]domain.Deal, error) {
	var out []domain.Deal
	for _, d := range s.deals {
		if d.Status != status {
			continue
		}
		if filter.ActiveOnly && !d.IsActive {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *fakeStore) CountByStatus(ctx context.Context, status domain.DealStatus) (int, error) {
	out, _ := s.FindByStatus(ctx, status, ListFilter{})
	return len(out), nil
}

func (s *fakeStore) FindPendingSince(context.Context, time.Time) ([]domain.Deal, error) {
	return nil, nil
}

func (s *fakeStore) CountPendingSince(context.Context, time.Time) (int, error) { return 0, nil }

func (s *fakeStore) Update(_ context.Context, deal *domain.Deal) error {
	s.deals[deal.ID] = *deal
	return nil
}

func (s *fakeStore) ApproveAll(context.Context, []uuid.UUID, string, time.Time) error { return nil }

func (s *fakeStore) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.deals, id)
	return nil
}

func (s *fakeStore) FindByHub(_ context.Context, hubID uuid.UUID) ([]domain.DealRelation, error) {
	var out []domain.DealRelation
	for _, rel := range s.relations {
		if rel.HubID == hubID {
			out = append(out, rel)
		}
	}
	return out, nil
}

func (s *fakeStore) HubIDsWithRelations(context.Context) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	for _, rel := range s.relations {
		out[rel.HubID] = true
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, relation *domain.DealRelation) error {
	s.relations = append(s.relations, *relation)
	return nil
}

func (s *fakeStore) DeleteByHub(_ context.Context, hubID uuid.UUID) error {
	kept := s.relations[:0]
	for _, rel := range s.relations {
		if rel.HubID != hubID {
			kept = append(kept, rel)
		}
	}
	s.relations = kept
	return nil
}

func approvedActive(title string) domain.Deal {
	return domain.Deal{ID: uuid.New(), Title: title, City: "Dubai", Status: domain.DealApproved, IsActive: true}
}

func pendingActive(title string) domain.Deal {
	return domain.Deal{ID: uuid.New(), Title: title, City: "Dubai", Status: domain.DealPending, IsActive: true}
}

func assertGraphInvariants(t *testing.T, store *fakeStore) {
	t.Helper()
	type edge struct {
		hub     uuid.UUID
		related uuid.UUID
	}
	seen := map[edge]domain.RelationKind{}
	for _, rel := range store.relations {
		assert.NotEqual(t, rel.HubID, rel.RelatedID, "self reference")
		key := edge{rel.HubID, rel.RelatedID}
		if prev, ok := seen[key]; ok {
			t.Errorf("deal %s linked to hub %s as both %s and %s", rel.RelatedID, rel.HubID, prev, rel.Kind)
		}
		seen[key] = rel.Kind
	}
}

func TestAttachSkipsSelfAndDuplicates(t *testing.T) {
	hub := approvedActive("hub")
	other := approvedActive("other")
	store := newFakeStore(hub, other)
	graph := NewGraph(store, store, logger.NewNop())
	ctx := context.Background()

	added, err := graph.AttachListed(ctx, hub.ID, hub.ID)
	require.NoError(t, err)
	assert.False(t, added, "self reference must be skipped")

	added, err = graph.AttachListed(ctx, hub.ID, other.ID)
	require.NoError(t, err)
	assert.True(t, added)

	// repeat attaches of every flavor against the same pair
	for i := 0; i < 3; i++ {
		added, err = graph.AttachListed(ctx, hub.ID, other.ID)
		require.NoError(t, err)
		assert.False(t, added)

		added, err = graph.AttachRecentSale(ctx, hub.ID, other.ID)
		require.NoError(t, err)
		assert.False(t, added, "listed and recent-sale sets must stay disjoint")
	}

	assert.Len(t, store.relations, 1)
	assertGraphInvariants(t, store)
}

func TestAttachRequiresVisibleHub(t *testing.T) {
	pendingHub := pendingActive("pending hub")
	hiddenHub := approvedActive("hidden hub")
	hiddenHub.IsActive = false
	other := approvedActive("other")
	store := newFakeStore(pendingHub, hiddenHub, other)
	graph := NewGraph(store, store, logger.NewNop())
	ctx := context.Background()

	added, err := graph.AttachListed(ctx, pendingHub.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, added, "pending deals must not act as hubs")

	added, err = graph.AttachRecentSale(ctx, hiddenHub.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, added, "deactivated deals must not act as hubs")

	assert.Empty(t, store.relations)
}

func TestAttachUnknownCandidate(t *testing.T) {
	hub := approvedActive("hub")
	store := newFakeStore(hub)
	graph := NewGraph(store, store, logger.NewNop())

	_, err := graph.AttachListed(context.Background(), hub.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrDealNotFound)
}

func TestBackfillLinksBareHubs(t *testing.T) {
	deals := []domain.Deal{
		approvedActive("hub-a"),
		approvedActive("hub-b"),
		approvedActive("hub-c"),
		approvedActive("hub-d"),
		pendingActive("pending-1"),
		pendingActive("pending-2"),
		pendingActive("pending-3"),
	}
	store := newFakeStore(deals...)
	graph := NewGraph(store, store, logger.NewNop())

	result, err := graph.Backfill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, result.HubsProcessed)
	assertGraphInvariants(t, store)

	for _, hub := range deals[:4] {
		listed, sales, err := graph.Relations(context.Background(), hub.ID)
		require.NoError(t, err)
		assert.Len(t, listed, 3, "hub %s", hub.Title)
		assert.Len(t, sales, 3, "hub %s", hub.Title)
	}
}

func TestBackfillFallsBackToApprovedWhenPendingThin(t *testing.T) {
	deals := []domain.Deal{
		approvedActive("hub"),
		approvedActive("comp-1"),
		approvedActive("comp-2"),
		approvedActive("comp-3"),
		approvedActive("comp-4"),
		pendingActive("only-pending"),
	}
	store := newFakeStore(deals...)
	graph := NewGraph(store, store, logger.NewNop())

	_, err := graph.Backfill(context.Background())
	require.NoError(t, err)
	assertGraphInvariants(t, store)

	hub := deals[0]
	listed, sales, err := graph.Relations(context.Background(), hub.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
	// one pending candidate plus the single approved deal left over after
	// the listed picks
	assert.Len(t, sales, 2)
}

func TestBackfillIdempotent(t *testing.T) {
	deals := []domain.Deal{
		approvedActive("hub"),
		approvedActive("comp"),
		pendingActive("pending-1"),
		pendingActive("pending-2"),
	}
	store := newFakeStore(deals...)
	graph := NewGraph(store, store, logger.NewNop())

	_, err := graph.Backfill(context.Background())
	require.NoError(t, err)
	first := len(store.relations)

	result, err := graph.Backfill(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.HubsProcessed, "linked hubs must be skipped")
	assert.Equal(t, first, len(store.relations))
}

func TestBackfillIgnoresInactiveAndRejected(t *testing.T) {
	inactive := approvedActive("inactive")
	inactive.IsActive = false
	rejected := approvedActive("rejected")
	rejected.Status = domain.DealRejected

	store := newFakeStore(inactive, rejected)
	graph := NewGraph(store, store, logger.NewNop())

	result, err := graph.Backfill(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.HubsProcessed)
	assert.Empty(t, store.relations)
}
