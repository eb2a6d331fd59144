package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type TranslationRepository struct {
	db *sqlx.DB
}

func NewTranslationRepository(db *sqlx.DB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

const translationColumns = `
	id, language_code, namespace, translation_key, value, created_at, updated_at`

func (r *TranslationRepository) FindAll(ctx context.Context) ([]domain.Translation, error) {
	rows := []domain.Translation{}
	query := `SELECT` + translationColumns + ` FROM translations
		ORDER BY language_code, namespace, translation_key`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list translations")
	}
	return rows, nil
}

func (r *TranslationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Translation, error) {
	var row domain.Translation
	query := `SELECT` + translationColumns + ` FROM translations WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTranslationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find translation")
	}
	return &row, nil
}

func (r *TranslationRepository) FindByLanguage(ctx context.Context, languageCode string) ([]domain.Translation, error) {
	rows := []domain.Translation{}
	query := `SELECT` + translationColumns + ` FROM translations
		WHERE language_code = $1 ORDER BY namespace, translation_key`

	err := r.db.SelectContext(ctx, &rows, query, languageCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list translations by language")
	}
	return rows, nil
}

func (r *TranslationRepository) FindByKey(ctx context.Context, languageCode, namespace, key string) (*domain.Translation, error) {
	var row domain.Translation
	query := `SELECT` + translationColumns + ` FROM translations
		WHERE language_code = $1 AND namespace = $2 AND translation_key = $3`

	err := r.db.GetContext(ctx, &row, query, languageCode, namespace, key)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTranslationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find translation by key")
	}
	return &row, nil
}

func (r *TranslationRepository) ListNamespaces(ctx context.Context, languageCode string) ([]string, error) {
	namespaces := []string{}
	query := `SELECT DISTINCT namespace FROM translations
		WHERE language_code = $1 ORDER BY namespace`

	err := r.db.SelectContext(ctx, &namespaces, query, languageCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list namespaces")
	}
	return namespaces, nil
}

func (r *TranslationRepository) Create(ctx context.Context, translation *domain.Translation) error {
	query := `
		INSERT INTO translations (
			id, language_code, namespace, translation_key, value,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		translation.ID, translation.LanguageCode, translation.Namespace,
		translation.TranslationKey, translation.Value,
	).Scan(&translation.CreatedAt, &translation.UpdatedAt)
	return errors.Wrap(err, "failed to create translation")
}

func (r *TranslationRepository) Update(ctx context.Context, translation *domain.Translation) error {
	query := `UPDATE translations SET value = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, translation.Value, translation.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update translation")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrTranslationNotFound
	}
	return nil
}

func (r *TranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM translations WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete translation")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrTranslationNotFound
	}
	return nil
}
