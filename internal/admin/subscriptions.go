package admin

import (
	"context"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
)

// SubscriptionPage is one page of subscriptions plus the unpaged total.
type SubscriptionPage struct {
	Subscriptions []domain.Subscription `json:"subscriptions"`
	Total         int                   `json:"total"`
}

func (s *Service) ListSubscriptions(ctx context.Context, params ListParams) (*SubscriptionPage, error) {
	params = params.Normalize()
	subs, err := s.subscriptions.FindAll(ctx, params)
	if err != nil {
		return nil, apperrors.Wrap(err, "list subscriptions")
	}
	total, err := s.subscriptions.CountAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "count subscriptions")
	}
	return &SubscriptionPage{Subscriptions: subs, Total: total}, nil
}

func (s *Service) GetSubscription(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	return s.subscriptions.FindByID(ctx, id)
}

// CancelSubscription marks the subscription CANCELLED with the end date set
// to the cancel instant and resets the owning user's tier to FREE, both in
// one transaction. Cancelling an already cancelled subscription refreshes
// the end date; the status stays CANCELLED and the tier reset reapplies.
func (s *Service) CancelSubscription(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subscriptions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	sub.Status = domain.SubscriptionCancelled
	sub.EndDate = &now
	if err := s.subscriptions.CancelCascade(ctx, sub, domain.TierFree); err != nil {
		return nil, apperrors.Wrap(err, "cancel subscription")
	}
	s.logger.Info("Subscription cancelled", map[string]interface{}{
		"subscription_id": id.String(),
		"user_id":         sub.UserID.String(),
	})
	return sub, nil
}
