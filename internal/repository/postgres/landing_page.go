package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type LandingPageRepository struct {
	db *sqlx.DB
}

func NewLandingPageRepository(db *sqlx.DB) *LandingPageRepository {
	return &LandingPageRepository{db: db}
}

const landingPageColumns = `
	id, section, language_code, field_key, content_type, value,
	updated_by, created_at, updated_at`

func (r *LandingPageRepository) FindAll(ctx context.Context) ([]domain.LandingPageContent, error) {
	rows := []domain.LandingPageContent{}
	query := `SELECT` + landingPageColumns + ` FROM landing_page_content
		ORDER BY section, language_code, field_key`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list landing page content")
	}
	return rows, nil
}

func (r *LandingPageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.LandingPageContent, error) {
	var row domain.LandingPageContent
	query := `SELECT` + landingPageColumns + ` FROM landing_page_content WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrContentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find landing page content")
	}
	return &row, nil
}

func (r *LandingPageRepository) FindBySection(ctx context.Context, section string) ([]domain.LandingPageContent, error) {
	rows := []domain.LandingPageContent{}
	query := `SELECT` + landingPageColumns + ` FROM landing_page_content
		WHERE section = $1 ORDER BY language_code, field_key`

	err := r.db.SelectContext(ctx, &rows, query, section)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list landing page content by section")
	}
	return rows, nil
}

func (r *LandingPageRepository) FindByLanguage(ctx context.Context, languageCode string) ([]domain.LandingPageContent, error) {
	rows := []domain.LandingPageContent{}
	query := `SELECT` + landingPageColumns + ` FROM landing_page_content
		WHERE language_code = $1 ORDER BY section, field_key`

	err := r.db.SelectContext(ctx, &rows, query, languageCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list landing page content by language")
	}
	return rows, nil
}

func (r *LandingPageRepository) FindBySectionAndLanguage(ctx context.Context, section, languageCode string) ([]domain.LandingPageContent, error) {
	rows := []domain.LandingPageContent{}
	query := `SELECT` + landingPageColumns + ` FROM landing_page_content
		WHERE section = $1 AND language_code = $2 ORDER BY field_key`

	err := r.db.SelectContext(ctx, &rows, query, section, languageCode)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list landing page section")
	}
	return rows, nil
}

func (r *LandingPageRepository) FindByKey(ctx context.Context, section, languageCode, fieldKey string) (*domain.LandingPageContent, error) {
	var row domain.LandingPageContent
	query := `SELECT` + landingPageColumns + ` FROM landing_page_content
		WHERE section = $1 AND language_code = $2 AND field_key = $3`

	err := r.db.GetContext(ctx, &row, query, section, languageCode, fieldKey)
	if err == sql.ErrNoRows {
		return nil, errors.ErrContentNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find landing page field")
	}
	return &row, nil
}

func (r *LandingPageRepository) Create(ctx context.Context, content *domain.LandingPageContent) error {
	query := `
		INSERT INTO landing_page_content (
			id, section, language_code, field_key, content_type, value,
			updated_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		content.ID, content.Section, content.LanguageCode, content.FieldKey,
		content.ContentType, content.Value, content.UpdatedBy,
	).Scan(&content.CreatedAt, &content.UpdatedAt)
	return errors.Wrap(err, "failed to create landing page content")
}

func (r *LandingPageRepository) Update(ctx context.Context, content *domain.LandingPageContent) error {
	query := `
		UPDATE landing_page_content SET
			content_type = $1, value = $2, updated_by = $3, updated_at = NOW()
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		content.ContentType, content.Value, content.UpdatedBy, content.ID)
	if err != nil {
		return errors.Wrap(err, "failed to update landing page content")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrContentNotFound
	}
	return nil
}

func (r *LandingPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM landing_page_content WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete landing page content")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrContentNotFound
	}
	return nil
}

func (r *LandingPageRepository) DeleteBySectionAndLanguage(ctx context.Context, section, languageCode string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM landing_page_content WHERE section = $1 AND language_code = $2`,
		section, languageCode)
	if err != nil {
		return 0, errors.Wrap(err, "failed to delete landing page section")
	}
	rows, _ := result.RowsAffected()
	return int(rows), nil
}
