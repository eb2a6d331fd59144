package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	dealsvc "rensadmin/internal/deal"
	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

const dealColumns = `
	id, title, description, city, area, building_name, property_type,
	bedrooms, size_sqft, asking_price, estimated_value, projected_rent_yield,
	discount_percent, image_url, listing_url, status, access_tier,
	is_active, batch_date, approved_at, approved_by, created_at, updated_at`

func (r *DealRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	var deal domain.Deal
	query := `SELECT` + dealColumns + ` FROM deals WHERE id = $1`

	err := r.db.GetContext(ctx, &deal, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrDealNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find deal")
	}
	return &deal, nil
}

// Create inserts a deal, ignoring duplicates on id. Callers that need
// idempotent inserts use deterministic ids. A zero batch date stamps the
// deal into the current batch.
func (r *DealRepository) Create(ctx context.Context, deal *domain.Deal) error {
	if deal.BatchDate.IsZero() {
		deal.BatchDate = time.Now()
	}

	query := `
		INSERT INTO deals (` + dealColumns + `
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING`

	_, err := r.db.ExecContext(ctx, query,
		deal.ID, deal.Title, deal.Description, deal.City, deal.Area,
		deal.BuildingName, deal.PropertyType, deal.Bedrooms, deal.SizeSqft,
		deal.AskingPrice, deal.EstimatedValue, deal.ProjectedRentYield,
		deal.DiscountPercent, deal.ImageURL, deal.ListingURL, deal.Status,
		deal.AccessTier, deal.IsActive, deal.BatchDate, deal.ApprovedAt,
		deal.ApprovedBy)
	return errors.Wrap(err, "failed to create deal")
}

func (r *DealRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Deal, error) {
	if len(ids) == 0 {
		return []domain.Deal{}, nil
	}
	query, args, err := sqlx.In(`SELECT`+dealColumns+` FROM deals WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build deal id query")
	}
	query = r.db.Rebind(query)

	deals := []domain.Deal{}
	if err := r.db.SelectContext(ctx, &deals, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to fetch deals by ids")
	}
	return deals, nil
}

func (r *DealRepository) FindByStatus(ctx context.Context, status domain.DealStatus, filter dealsvc.ListFilter) ([]domain.Deal, error) {
	query := `SELECT` + dealColumns + ` FROM deals WHERE status = $1`
	args := []interface{}{status}

	if filter.City != "" {
		args = append(args, filter.City)
		query += ` AND LOWER(city) = LOWER($2)`
	}
	if filter.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + fmt.Sprint(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + fmt.Sprint(len(args))
	}

	deals := []domain.Deal{}
	if err := r.db.SelectContext(ctx, &deals, query, args...); err != nil {
		return nil, errors.Wrap(err, "failed to list deals by status")
	}
	return deals, nil
}

func (r *DealRepository) CountByStatus(ctx context.Context, status domain.DealStatus) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM deals WHERE status = $1`, status)
	return count, errors.Wrap(err, "failed to count deals by status")
}

// FindPendingSince keys on batch_date, not created_at: a deal re-entering
// the queue carries its batch stamp.
func (r *DealRepository) FindPendingSince(ctx context.Context, since time.Time) ([]domain.Deal, error) {
	deals := []domain.Deal{}
	query := `SELECT` + dealColumns + ` FROM deals
		WHERE status = $1 AND batch_date >= $2 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &deals, query, domain.DealPending, since)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pending deals")
	}
	return deals, nil
}

func (r *DealRepository) CountPendingSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM deals WHERE status = $1 AND batch_date >= $2`,
		domain.DealPending, since)
	return count, errors.Wrap(err, "failed to count pending deals")
}

func (r *DealRepository) Update(ctx context.Context, deal *domain.Deal) error {
	query := `
		UPDATE deals SET
			title = $1, description = $2, city = $3, area = $4,
			building_name = $5, property_type = $6, bedrooms = $7,
			size_sqft = $8, asking_price = $9, estimated_value = $10,
			projected_rent_yield = $11, discount_percent = $12,
			image_url = $13, listing_url = $14, status = $15,
			access_tier = $16, is_active = $17, approved_at = $18,
			approved_by = $19, updated_at = NOW()
		WHERE id = $20
	`
	result, err := r.db.ExecContext(ctx, query,
		deal.Title, deal.Description, deal.City, deal.Area,
		deal.BuildingName, deal.PropertyType, deal.Bedrooms,
		deal.SizeSqft, deal.AskingPrice, deal.EstimatedValue,
		deal.ProjectedRentYield, deal.DiscountPercent,
		deal.ImageURL, deal.ListingURL, deal.Status,
		deal.AccessTier, deal.IsActive, deal.ApprovedAt,
		deal.ApprovedBy,
		deal.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update deal")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrDealNotFound
	}
	return nil
}

// ApproveAll stamps a batch of deals approved in one statement.
func (r *DealRepository) ApproveAll(ctx context.Context, ids []uuid.UUID, approvedBy string, approvedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`
		UPDATE deals SET
			status = ?, approved_at = ?, approved_by = ?, updated_at = ?
		WHERE id IN (?)`,
		domain.DealApproved, approvedAt, approvedBy, approvedAt, ids)
	if err != nil {
		return errors.Wrap(err, "failed to build batch approval")
	}
	query = r.db.Rebind(query)

	_, err = r.db.ExecContext(ctx, query, args...)
	return errors.Wrap(err, "failed to approve deals")
}

func (r *DealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete deal")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrDealNotFound
	}
	return nil
}
