package deal

import (
	"context"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

const (
	maxListedPerHub     = 3
	maxRecentSalePerHub = 3
)

// RelationRepository is the persistence surface for deal relationship edges.
type RelationRepository interface {
	FindByHub(ctx context.Context, hubID uuid.UUID) ([]domain.DealRelation, error)
	HubIDsWithRelations(ctx context.Context) (map[uuid.UUID]bool, error)
	Create(ctx context.Context, relation *domain.DealRelation) error
	DeleteByHub(ctx context.Context, hubID uuid.UUID) error
}

// Graph maintains the comparable links hanging off approved deals. Attach
// operations have set semantics: self-references, duplicates, candidates
// already linked under the other kind, and hubs not publicly visible are
// silently skipped.
type Graph struct {
	deals     Repository
	relations RelationRepository
	logger    logger.Logger
}

func NewGraph(deals Repository, relations RelationRepository, log logger.Logger) *Graph {
	return &Graph{deals: deals, relations: relations, logger: log}
}

// AttachListed links a comparable currently-listed deal to a hub. Returns
// true when a new edge was written.
func (g *Graph) AttachListed(ctx context.Context, hubID, relatedID uuid.UUID) (bool, error) {
	return g.attach(ctx, hubID, relatedID, domain.RelationListed)
}

// AttachRecentSale links a comparable recently-sold deal to a hub. Returns
// true when a new edge was written.
func (g *Graph) AttachRecentSale(ctx context.Context, hubID, relatedID uuid.UUID) (bool, error) {
	return g.attach(ctx, hubID, relatedID, domain.RelationRecentSale)
}

func (g *Graph) attach(ctx context.Context, hubID, relatedID uuid.UUID, kind domain.RelationKind) (bool, error) {
	if hubID == relatedID {
		return false, nil
	}
	hub, err := g.deals.FindByID(ctx, hubID)
	if err != nil {
		return false, err
	}
	// only publicly visible deals act as hubs
	if !hub.VisibleToPublic() {
		return false, nil
	}
	if _, err := g.deals.FindByID(ctx, relatedID); err != nil {
		return false, err
	}
	existing, err := g.relations.FindByHub(ctx, hubID)
	if err != nil {
		return false, apperrors.Wrap(err, "load hub relations")
	}
	// already linked under either kind: keep the sets disjoint
	for _, rel := range existing {
		if rel.RelatedID == relatedID {
			return false, nil
		}
	}
	rel := &domain.DealRelation{
		ID:        uuid.New(),
		HubID:     hubID,
		RelatedID: relatedID,
		Kind:      kind,
	}
	if err := g.relations.Create(ctx, rel); err != nil {
		return false, apperrors.Wrap(err, "create deal relation")
	}
	return true, nil
}

// Relations returns the edges of a hub grouped by kind.
func (g *Graph) Relations(ctx context.Context, hubID uuid.UUID) (listed, recentSales []domain.DealRelation, err error) {
	all, err := g.relations.FindByHub(ctx, hubID)
	if err != nil {
		return nil, nil, apperrors.Wrap(err, "load hub relations")
	}
	for _, rel := range all {
		if rel.Kind == domain.RelationListed {
			listed = append(listed, rel)
		} else {
			recentSales = append(recentSales, rel)
		}
	}
	return listed, recentSales, nil
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	HubsProcessed int `json:"hubs_processed"`
	EdgesCreated  int `json:"edges_created"`
}

// Backfill links comparables onto every approved, active deal that has no
// relations yet. Each hub gets up to three listed comparables drawn from the
// other approved-active deals, and up to three recent sales drawn from
// pending-active deals, topped up from the remaining approved pool when
// fewer than two pending candidates exist. Hubs that already carry relations
// are left alone, so the run is idempotent.
func (g *Graph) Backfill(ctx context.Context) (*BackfillResult, error) {
	approved, err := g.deals.FindByStatus(ctx, domain.DealApproved, ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, apperrors.Wrap(err, "load approved deals")
	}
	pending, err := g.deals.FindByStatus(ctx, domain.DealPending, ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, apperrors.Wrap(err, "load pending deals")
	}
	linked, err := g.relations.HubIDsWithRelations(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "load linked hubs")
	}

	result := &BackfillResult{}
	for _, hub := range approved {
		if linked[hub.ID] {
			continue
		}
		created, err := g.backfillHub(ctx, hub, approved, pending)
		if err != nil {
			return nil, err
		}
		result.HubsProcessed++
		result.EdgesCreated += created
	}

	g.logger.Info("Relationship backfill finished", map[string]interface{}{
		"hubs_processed": result.HubsProcessed,
		"edges_created":  result.EdgesCreated,
	})
	return result, nil
}

func (g *Graph) backfillHub(ctx context.Context, hub domain.Deal, approved, pending []domain.Deal) (int, error) {
	used := map[uuid.UUID]bool{hub.ID: true}
	created := 0

	listed := 0
	for _, candidate := range approved {
		if listed >= maxListedPerHub {
			break
		}
		if used[candidate.ID] {
			continue
		}
		if err := g.createEdge(ctx, hub.ID, candidate.ID, domain.RelationListed); err != nil {
			return created, err
		}
		used[candidate.ID] = true
		listed++
		created++
	}

	// recent sales come from the pending pool; when it is thin, the
	// remaining approved deals top it up
	pool := make([]domain.Deal, 0, len(pending)+len(approved))
	pendingAvailable := 0
	for _, candidate := range pending {
		if !used[candidate.ID] {
			pendingAvailable++
		}
		pool = append(pool, candidate)
	}
	if pendingAvailable < 2 {
		pool = append(pool, approved...)
	}

	sales := 0
	for _, candidate := range pool {
		if sales >= maxRecentSalePerHub {
			break
		}
		if used[candidate.ID] {
			continue
		}
		if err := g.createEdge(ctx, hub.ID, candidate.ID, domain.RelationRecentSale); err != nil {
			return created, err
		}
		used[candidate.ID] = true
		sales++
		created++
	}
	return created, nil
}

func (g *Graph) createEdge(ctx context.Context, hubID, relatedID uuid.UUID, kind domain.RelationKind) error {
	rel := &domain.DealRelation{
		ID:        uuid.New(),
		HubID:     hubID,
		RelatedID: relatedID,
		Kind:      kind,
	}
	if err := g.relations.Create(ctx, rel); err != nil {
		return apperrors.Wrap(err, "create deal relation")
	}
	return nil
}
