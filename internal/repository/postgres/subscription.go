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

type SubscriptionRepository struct {
	db *sqlx.DB
}

func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

var subscriptionSortColumns = map[string]string{
	"createdAt": "created_at",
	"startDate": "start_date",
	"endDate":   "end_date",
	"status":    "status",
	"planType":  "plan_type",
}

const subscriptionColumns = `
	id, user_id, user_email, plan_type, status, start_date, end_date,
	stripe_subscription_id, created_at`

func (r *SubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	var sub domain.Subscription
	query := `SELECT` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`

	err := r.db.GetContext(ctx, &sub, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find subscription")
	}
	return &sub, nil
}

func (r *SubscriptionRepository) FindAll(ctx context.Context, params admin.ListParams) ([]domain.Subscription, error) {
	params = params.Normalize()
	column, ok := subscriptionSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}

	subs := []domain.Subscription{}
	query := fmt.Sprintf(`SELECT`+subscriptionColumns+` FROM subscriptions ORDER BY %s %s LIMIT $1 OFFSET $2`,
		column, params.SortDir)

	err := r.db.SelectContext(ctx, &subs, query, params.Size, params.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions")
	}
	return subs, nil
}

func (r *SubscriptionRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM subscriptions`)
	return count, errors.Wrap(err, "failed to count subscriptions")
}

// Snapshot loads every subscription for in-memory dashboard aggregation.
func (r *SubscriptionRepository) Snapshot(ctx context.Context) ([]domain.Subscription, error) {
	subs := []domain.Subscription{}
	query := `SELECT` + subscriptionColumns + ` FROM subscriptions ORDER BY created_at`

	err := r.db.SelectContext(ctx, &subs, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot subscriptions")
	}
	return subs, nil
}

// CancelCascade persists the cancelled subscription and downgrades the
// owning user's tier in one transaction, so the two stores of state cannot
// drift apart.
func (r *SubscriptionRepository) CancelCascade(ctx context.Context, sub *domain.Subscription, downgradeTo domain.UserTier) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin cancellation")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE subscriptions SET status = $1, end_date = $2 WHERE id = $3`,
		sub.Status, sub.EndDate, sub.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to cancel subscription")
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET user_tier = $1, updated_at = NOW() WHERE id = $2`,
		downgradeTo, sub.UserID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to downgrade user tier")
	}

	return errors.Wrap(tx.Commit(), "failed to commit cancellation")
}
