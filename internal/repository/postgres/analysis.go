package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rensadmin/internal/admin"
	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type AnalysisRepository struct {
	db *sqlx.DB
}

func NewAnalysisRepository(db *sqlx.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

var analysisSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"status":    "status",
	"city":      "city",
}

const analysisColumns = `
	id, user_id, email, city, area, building_name, listing_url,
	property_type, bedrooms, size, asking_price, analysis_id,
	analysis_result, status, created_at, updated_at`

func (r *AnalysisRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error) {
	var req domain.AnalysisRequest
	query := `SELECT` + analysisColumns + ` FROM analysis_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAnalysisRequestNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find analysis request")
	}
	return &req, nil
}

func (r *AnalysisRepository) FindAll(ctx context.Context, params admin.ListParams) ([]domain.AnalysisRequest, error) {
	params = params.Normalize()
	column, ok := analysisSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}

	reqs := []domain.AnalysisRequest{}
	query := fmt.Sprintf(`SELECT`+analysisColumns+` FROM analysis_requests ORDER BY %s %s LIMIT $1 OFFSET $2`,
		column, params.SortDir)

	err := r.db.SelectContext(ctx, &reqs, query, params.Size, params.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list analysis requests")
	}
	return reqs, nil
}

func (r *AnalysisRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM analysis_requests`)
	return count, errors.Wrap(err, "failed to count analysis requests")
}

func (r *AnalysisRepository) CountByStatus(ctx context.Context, status domain.AnalysisRequestStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM analysis_requests WHERE status = $1`, status)
	return count, errors.Wrap(err, "failed to count analysis requests by status")
}

func (r *AnalysisRepository) Update(ctx context.Context, req *domain.AnalysisRequest) error {
	query := `
		UPDATE analysis_requests SET
			analysis_id = $1, analysis_result = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		req.AnalysisID, req.AnalysisResult, req.Status, req.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update analysis request")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrAnalysisRequestNotFound
	}
	return nil
}
