package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type DealTranslationRepository struct {
	db *sqlx.DB
}

func NewDealTranslationRepository(db *sqlx.DB) *DealTranslationRepository {
	return &DealTranslationRepository{db: db}
}

const dealTranslationColumns = `
	id, deal_id, language_code, field_name, translated_value, created_at, updated_at`

func (r *DealTranslationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.DealTranslation, error) {
	var row domain.DealTranslation
	query := `SELECT` + dealTranslationColumns + ` FROM deal_translations WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTranslationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find deal translation")
	}
	return &row, nil
}

func (r *DealTranslationRepository) FindByDeal(ctx context.Context, dealID uuid.UUID) ([]domain.DealTranslation, error) {
	rows := []domain.DealTranslation{}
	query := `SELECT` + dealTranslationColumns + ` FROM deal_translations
		WHERE deal_id = $1 ORDER BY language_code, field_name`

	err := r.db.SelectContext(ctx, &rows, query, dealID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list deal translations")
	}
	return rows, nil
}

func (r *DealTranslationRepository) FindByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) ([]domain.DealTranslation, error) {
	rows := []domain.DealTranslation{}
	query := `SELECT` + dealTranslationColumns + ` FROM deal_translations
		WHERE deal_id = $1 AND language_code = $2 ORDER BY field_name`

	err := r.db.SelectContext(ctx, &rows, query, dealID, languageCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list deal translations by language")
	}
	return rows, nil
}

func (r *DealTranslationRepository) FindByKey(ctx context.Context, dealID uuid.UUID, languageCode, fieldName string) (*domain.DealTranslation, error) {
	var row domain.DealTranslation
	query := `SELECT` + dealTranslationColumns + ` FROM deal_translations
		WHERE deal_id = $1 AND language_code = $2 AND field_name = $3`

	err := r.db.GetContext(ctx, &row, query, dealID, languageCode, fieldName)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTranslationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find deal translation by key")
	}
	return &row, nil
}

func (r *DealTranslationRepository) Create(ctx context.Context, translation *domain.DealTranslation) error {
	query := `
		INSERT INTO deal_translations (
			id, deal_id, language_code, field_name, translated_value,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		translation.ID, translation.DealID, translation.LanguageCode,
		translation.FieldName, translation.TranslatedValue,
	).Scan(&translation.CreatedAt, &translation.UpdatedAt)
	return errors.Wrap(err, "failed to create deal translation")
}

func (r *DealTranslationRepository) Update(ctx context.Context, translation *domain.DealTranslation) error {
	query := `
		UPDATE deal_translations SET translated_value = $1, updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query,
		translation.TranslatedValue, translation.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update deal translation")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrTranslationNotFound
	}
	return nil
}

func (r *DealTranslationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM deal_translations WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete deal translation")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrTranslationNotFound
	}
	return nil
}

func (r *DealTranslationRepository) DeleteByDeal(ctx context.Context, dealID uuid.UUID) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM deal_translations WHERE deal_id = $1`, dealID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete deal translations")
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}

func (r *DealTranslationRepository) DeleteByDealAndLanguage(ctx context.Context, dealID uuid.UUID, languageCode string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM deal_translations WHERE deal_id = $1 AND language_code = $2`,
		dealID, languageCode)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete deal translations by language")
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
