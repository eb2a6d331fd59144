package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type AdminUserRepository struct {
	db *sqlx.DB
}

func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

const adminUserColumns = `
	id, email, password_hash, full_name, is_active, last_login_at,
	created_at, updated_at`

func (r *AdminUserRepository) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	var admin domain.AdminUser
	query := `SELECT` + adminUserColumns + ` FROM admin_users WHERE LOWER(email) = LOWER($1)`

	err := r.db.GetContext(ctx, &admin, query, email)
	if err == sql.ErrNoRows {
		return nil, errors.ErrAdminNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find admin user")
	}
	return &admin, nil
}

func (r *AdminUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM admin_users WHERE LOWER(email) = LOWER($1))`

	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, errors.Wrap(err, "failed to check admin existence")
	}
	return exists, nil
}

func (r *AdminUserRepository) Create(ctx context.Context, admin *domain.AdminUser) error {
	query := `
		INSERT INTO admin_users (
			id, email, password_hash, full_name, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		admin.ID, admin.Email, admin.PasswordHash, admin.FullName,
		admin.IsActive,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	return errors.Wrap(err, "failed to create admin user")
}

func (r *AdminUserRepository) Update(ctx context.Context, admin *domain.AdminUser) error {
	query := `
		UPDATE admin_users SET
			email = $1, password_hash = $2, full_name = $3, is_active = $4,
			last_login_at = $5, updated_at = NOW()
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		admin.Email, admin.PasswordHash, admin.FullName, admin.IsActive,
		admin.LastLoginAt, admin.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update admin user")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrAdminNotFound
	}
	return nil
}
