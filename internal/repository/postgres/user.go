// Package postgres implements the repository interfaces declared by the
// service packages, over the two relational stores: the backend store
// (users, subscriptions, devices, analysis requests) and the public store
// (deals, translations, landing content, reports, settings, admins).
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

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// userSortColumns whitelists the caller-supplied sort keys. Anything else
// falls back to created_at.
var userSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"email":     "email",
	"userTier":  "user_tier",
}

const userColumns = `
	id, email, password_hash, first_name, last_name, phone, budget,
	portfolio, goals_json, registration_plan, user_tier, customer_id,
	is_active, email_verified, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}
	return &user, nil
}

func (r *UserRepository) FindAll(ctx context.Context, params admin.ListParams) ([]domain.User, error) {
	params = params.Normalize()
	column, ok := userSortColumns[params.SortBy]
	if !ok {
		column = "created_at"
	}

	users := []domain.User{}
	query := fmt.Sprintf(`SELECT`+userColumns+` FROM users ORDER BY %s %s LIMIT $1 OFFSET $2`,
		column, params.SortDir)

	err := r.db.SelectContext(ctx, &users, query, params.Size, params.Offset())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return users, nil
}

func (r *UserRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, errors.Wrap(err, "failed to count users")
}

// Snapshot loads every user for in-memory dashboard aggregation.
func (r *UserRepository) Snapshot(ctx context.Context) ([]domain.User, error) {
	users := []domain.User{}
	query := `SELECT` + userColumns + ` FROM users ORDER BY created_at`

	err := r.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot users")
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users SET
			email = $1, first_name = $2, last_name = $3, phone = $4,
			budget = $5, portfolio = $6, goals_json = $7, registration_plan = $8,
			user_tier = $9, customer_id = $10, is_active = $11,
			email_verified = $12, updated_at = NOW()
		WHERE id = $13
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Email, user.FirstName, user.LastName, user.Phone,
		user.Budget, user.Portfolio, user.GoalsJSON, user.RegistrationPlan,
		user.UserTier, user.CustomerID, user.IsActive,
		user.EmailVerified,
		user.ID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to update user")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrUserNotFound
	}
	return nil
}
