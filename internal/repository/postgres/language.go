package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type LanguageRepository struct {
	db *sqlx.DB
}

func NewLanguageRepository(db *sqlx.DB) *LanguageRepository {
	return &LanguageRepository{db: db}
}

const languageColumns = `
	id, code, name, native_name, is_enabled, is_default, created_at, updated_at`

func (r *LanguageRepository) FindAll(ctx context.Context) ([]domain.Language, error) {
	rows := []domain.Language{}
	query := `SELECT` + languageColumns + ` FROM languages ORDER BY code`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list languages")
	}
	return rows, nil
}

func (r *LanguageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Language, error) {
	var row domain.Language
	query := `SELECT` + languageColumns + ` FROM languages WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrLanguageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find language")
	}
	return &row, nil
}

func (r *LanguageRepository) FindByCode(ctx context.Context, code string) (*domain.Language, error) {
	var row domain.Language
	query := `SELECT` + languageColumns + ` FROM languages WHERE code = $1`

	err := r.db.GetContext(ctx, &row, query, code)
	if err == sql.ErrNoRows {
		return nil, errors.ErrLanguageNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find language by code")
	}
	return &row, nil
}

func (r *LanguageRepository) Create(ctx context.Context, language *domain.Language) error {
	query := `
		INSERT INTO languages (
			id, code, name, native_name, is_enabled, is_default,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		language.ID, language.Code, language.Name, language.NativeName,
		language.IsEnabled, language.IsDefault,
	).Scan(&language.CreatedAt, &language.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.ErrLanguageExists
		}
		return errors.Wrap(err, "failed to create language")
	}
	return nil
}

func (r *LanguageRepository) Update(ctx context.Context, language *domain.Language) error {
	query := `
		UPDATE languages SET
			name = $1, native_name = $2, is_enabled = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		language.Name, language.NativeName, language.IsEnabled, language.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update language")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrLanguageNotFound
	}
	return nil
}

// SetDefault clears the previous default and promotes the given language in
// one transaction, keeping exactly one default at all times.
func (r *LanguageRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin default change")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE languages SET is_default = FALSE, updated_at = NOW() WHERE is_default = TRUE`); err != nil {
		return errors.Wrap(err, "failed to clear default language")
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE languages SET is_default = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to set default language")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrLanguageNotFound
	}

	return errors.Wrap(tx.Commit(), "failed to commit default change")
}

func (r *LanguageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete language")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrLanguageNotFound
	}
	return nil
}
