// Package deal implements the review lifecycle for property deals and the
// relationship graph between approved deals and their comparables.
package deal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// ListFilter narrows a status listing.
type ListFilter struct {
	City       string
	ActiveOnly bool
	Limit      int
	Offset     int
}

// UpdateRequest carries the editable fields of a deal. Nil fields are left
// unchanged.
type UpdateRequest struct {
	Title              *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description        *string          `json:"description,omitempty"`
	City               *string          `json:"city,omitempty" validate:"omitempty,min=1,max=120"`
	Area               *string          `json:"area,omitempty"`
	BuildingName       *string          `json:"building_name,omitempty"`
	PropertyType       *string          `json:"property_type,omitempty"`
	Bedrooms           *string          `json:"bedrooms,omitempty"`
	SizeSqft           *decimal.Decimal `json:"size_sqft,omitempty"`
	AskingPrice        *decimal.Decimal `json:"asking_price,omitempty"`
	EstimatedValue     *decimal.Decimal `json:"estimated_value,omitempty"`
	ProjectedRentYield *decimal.Decimal `json:"projected_rent_yield,omitempty"`
	DiscountPercent    *decimal.Decimal `json:"discount_percent,omitempty"`
	ImageURL           *string          `json:"image_url,omitempty"`
	ListingURL         *string          `json:"listing_url,omitempty"`
	AccessTier         *string          `json:"access_tier,omitempty"`
}

// BatchApprovalResult reports a partial-success batch approval: every
// requested id is either in Approved or in NotFound.
type BatchApprovalResult struct {
	Approved []domain.Deal `json:"approved"`
	NotFound []uuid.UUID   `json:"not_found"`
}

// Repository is the public-store persistence surface the lifecycle needs.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Deal, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Deal, error)
	FindByStatus(ctx context.Context, status domain.DealStatus, filter ListFilter) ([]domain.Deal, error)
	CountByStatus(ctx context.Context, status domain.DealStatus) (int, error)
	FindPendingSince(ctx context.Context, since time.Time) ([]domain.Deal, error)
	CountPendingSince(ctx context.Context, since time.Time) (int, error)
	Update(ctx context.Context, deal *domain.Deal) error
	ApproveAll(ctx context.Context, ids []uuid.UUID, approvedBy string, approvedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service drives deal status transitions and visibility toggles.
type Service struct {
	repo   Repository
	logger logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log, now: time.Now}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	return s.repo.FindByID(ctx, id)
}

// ListPending returns deals awaiting review.
func (s *Service) ListPending(ctx context.Context, filter ListFilter) ([]domain.Deal, error) {
	return s.repo.FindByStatus(ctx, domain.DealPending, filter)
}

// ListPendingToday returns deals that entered the queue since local midnight.
func (s *Service) ListPendingToday(ctx context.Context) ([]domain.Deal, error) {
	return s.repo.FindPendingSince(ctx, startOfDay(s.now()))
}

// CountPendingToday counts deals that entered the queue since local midnight.
func (s *Service) CountPendingToday(ctx context.Context) (int, error) {
	return s.repo.CountPendingSince(ctx, startOfDay(s.now()))
}

func (s *Service) ListApproved(ctx context.Context, filter ListFilter) ([]domain.Deal, error) {
	return s.repo.FindByStatus(ctx, domain.DealApproved, filter)
}

// ListByStatus lists deals for a caller-supplied status string.
func (s *Service) ListByStatus(ctx context.Context, status string, filter ListFilter) ([]domain.Deal, error) {
	parsed, err := domain.ParseDealStatus(status)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByStatus(ctx, parsed, filter)
}

func (s *Service) ListRejected(ctx context.Context, filter ListFilter) ([]domain.Deal, error) {
	return s.repo.FindByStatus(ctx, domain.DealRejected, filter)
}

// Approve moves a deal to APPROVED and stamps the approver. Re-approving an
// already approved deal overwrites the stamp; there is no double-approval
// guard.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, approvedBy string) (*domain.Deal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	deal.Status = domain.DealApproved
	deal.ApprovedAt = &now
	deal.ApprovedBy = &approvedBy
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, apperrors.Wrap(err, "approve deal")
	}
	s.logger.Info("Deal approved", map[string]interface{}{
		"deal_id":     deal.ID.String(),
		"approved_by": approvedBy,
	})
	return deal, nil
}

// BatchApprove approves every requested deal that exists, in one repository
// write, and reports the ids it could not find. Missing ids do not fail the
// batch.
func (s *Service) BatchApprove(ctx context.Context, ids []uuid.UUID, approvedBy string) (*BatchApprovalResult, error) {
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Wrap(err, "load deals for batch approval")
	}

	foundSet := make(map[uuid.UUID]bool, len(found))
	for _, d := range found {
		foundSet[d.ID] = true
	}
	var notFound []uuid.UUID
	for _, id := range ids {
		if !foundSet[id] {
			notFound = append(notFound, id)
		}
	}

	result := &BatchApprovalResult{NotFound: notFound}
	if len(found) == 0 {
		return result, nil
	}

	now := s.now()
	approveIDs := make([]uuid.UUID, 0, len(found))
	for _, d := range found {
		approveIDs = append(approveIDs, d.ID)
	}
	if err := s.repo.ApproveAll(ctx, approveIDs, approvedBy, now); err != nil {
		return nil, apperrors.Wrap(err, "batch approve deals")
	}

	for i := range found {
		found[i].Status = domain.DealApproved
		found[i].ApprovedAt = &now
		found[i].ApprovedBy = &approvedBy
	}
	result.Approved = found

	if len(notFound) > 0 {
		s.logger.Warn("Batch approval skipped missing deals", map[string]interface{}{
			"requested": len(ids),
			"approved":  len(found),
			"missing":   len(notFound),
		})
	}
	return result, nil
}

// Reject moves a deal to REJECTED. The active flag and any previous approval
// stamp are left untouched.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deal.Status = domain.DealRejected
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, apperrors.Wrap(err, "reject deal")
	}
	return deal, nil
}

// Activate turns the visibility flag on; independent of review status.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate turns the visibility flag off; independent of review status.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) (*domain.Deal, error) {
	return s.setActive(ctx, id, false)
}

func (s *Service) setActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Deal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	deal.IsActive = active
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, apperrors.Wrap(err, "toggle deal visibility")
	}
	return deal, nil
}

// Update applies the non-nil fields of req to the deal.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*domain.Deal, error) {
	deal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(deal, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, apperrors.Wrap(err, "update deal")
	}
	return deal, nil
}

// Delete removes a deal permanently. Relation rows pointing at it are cleaned
// up by the relation repository's foreign keys.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete deal")
	}
	s.logger.Info("Deal deleted", map[string]interface{}{"deal_id": id.String()})
	return nil
}

func applyUpdate(deal *domain.Deal, req *UpdateRequest) error {
	if req.Title != nil {
		deal.Title = *req.Title
	}
	if req.Description != nil {
		deal.Description = req.Description
	}
	if req.City != nil {
		deal.City = *req.City
	}
	if req.Area != nil {
		deal.Area = req.Area
	}
	if req.BuildingName != nil {
		deal.BuildingName = req.BuildingName
	}
	if req.PropertyType != nil {
		deal.PropertyType = req.PropertyType
	}
	if req.Bedrooms != nil {
		deal.Bedrooms = req.Bedrooms
	}
	if req.SizeSqft != nil {
		deal.SizeSqft = req.SizeSqft
	}
	if req.AskingPrice != nil {
		deal.AskingPrice = req.AskingPrice
	}
	if req.EstimatedValue != nil {
		deal.EstimatedValue = req.EstimatedValue
	}
	if req.ProjectedRentYield != nil {
		deal.ProjectedRentYield = req.ProjectedRentYield
	}
	if req.DiscountPercent != nil {
		deal.DiscountPercent = req.DiscountPercent
	}
	if req.ImageURL != nil {
		deal.ImageURL = req.ImageURL
	}
	if req.ListingURL != nil {
		deal.ListingURL = req.ListingURL
	}
	if req.AccessTier != nil {
		tier, err := domain.ParseAccessTier(*req.AccessTier)
		if err != nil {
			return err
		}
		deal.AccessTier = tier
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
