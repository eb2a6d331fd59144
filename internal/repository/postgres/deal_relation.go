package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type DealRelationRepository struct {
	db *sqlx.DB
}

func NewDealRelationRepository(db *sqlx.DB) *DealRelationRepository {
	return &DealRelationRepository{db: db}
}

func (r *DealRelationRepository) FindByHub(ctx context.Context, hubID uuid.UUID) ([]domain.DealRelation, error) {
	relations := []domain.DealRelation{}
	query := `
		SELECT id, hub_id, related_id, kind, created_at
		FROM deal_relations WHERE hub_id = $1 ORDER BY created_at`

	err := r.db.SelectContext(ctx, &relations, query, hubID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list deal relations")
	}
	return relations, nil
}

// HubIDsWithRelations returns the set of deals that already have at least
// one outgoing relation, for backfill to skip.
func (r *DealRelationRepository) HubIDsWithRelations(ctx context.Context) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `SELECT DISTINCT hub_id FROM deal_relations`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list hub ids")
	}

	hubs := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		hubs[id] = true
	}
	return hubs, nil
}

func (r *DealRelationRepository) Create(ctx context.Context, relation *domain.DealRelation) error {
	query := `
		INSERT INTO deal_relations (id, hub_id, related_id, kind, created_at)
		VALUES ($1, $2, $3, $4, NOW())`

	_, err := r.db.ExecContext(ctx, query,
		relation.ID, relation.HubID, relation.RelatedID, relation.Kind)
	if err != nil {
		// 23505: the edge already exists, which attach semantics treat as fine
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil
		}
		return errors.Wrap(err, "failed to create deal relation")
	}
	return nil
}

func (r *DealRelationRepository) DeleteByHub(ctx context.Context, hubID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM deal_relations WHERE hub_id = $1`, hubID)
	return errors.Wrap(err, "failed to delete deal relations")
}
