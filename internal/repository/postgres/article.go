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

type ArticleRepository struct {
	db *sqlx.DB
}

func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = `
	id, title, slug, excerpt, content, cover_image, published_at,
	is_active, created_at, updated_at`

func (r *ArticleRepository) FindAll(ctx context.Context) ([]domain.Article, error) {
	rows := []domain.Article{}
	query := `SELECT` + articleColumns + ` FROM articles
		ORDER BY published_at DESC NULLS LAST, created_at DESC`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles")
	}
	return rows, nil
}

func (r *ArticleRepository) FindActive(ctx context.Context) ([]domain.Article, error) {
	rows := []domain.Article{}
	query := `SELECT` + articleColumns + ` FROM articles
		WHERE is_active = TRUE
		ORDER BY published_at DESC NULLS LAST, created_at DESC`

	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active articles")
	}
	return rows, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	var row domain.Article
	query := `SELECT` + articleColumns + ` FROM articles WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrArticleNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find article")
	}
	return &row, nil
}

func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	var row domain.Article
	query := `SELECT` + articleColumns + ` FROM articles WHERE slug = $1`

	err := r.db.GetContext(ctx, &row, query, slug)
	if err == sql.ErrNoRows {
		return nil, errors.ErrArticleNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find article by slug")
	}
	return &row, nil
}

func (r *ArticleRepository) Create(ctx context.Context, article *domain.Article) error {
	query := `
		INSERT INTO articles (
			id, title, slug, excerpt, content, cover_image, published_at,
			is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		article.ID, article.Title, article.Slug, article.Excerpt,
		article.Content, article.CoverImage, article.PublishedAt,
		article.IsActive,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.ErrArticleSlugExists
		}
		return errors.Wrap(err, "failed to create article")
	}
	return nil
}

func (r *ArticleRepository) Update(ctx context.Context, article *domain.Article) error {
	query := `
		UPDATE articles SET
			title = $1, slug = $2, excerpt = $3, content = $4,
			cover_image = $5, published_at = $6, is_active = $7,
			updated_at = NOW()
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		article.Title, article.Slug, article.Excerpt, article.Content,
		article.CoverImage, article.PublishedAt, article.IsActive, article.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errors.ErrArticleSlugExists
		}
		return errors.Wrap(err, "failed to update article")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete article")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return errors.ErrArticleNotFound
	}
	return nil
}
