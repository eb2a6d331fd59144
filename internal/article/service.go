// Package article manages the insights posts shown on the public site:
// admin CRUD plus the public read surface the app backend consumes.
package article

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// Repository is the public-store persistence surface for articles.
type Repository interface {
	FindAll(ctx context.Context) ([]domain.Article, error)
	FindActive(ctx context.Context) ([]domain.Article, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Article, error)
	Create(ctx context.Context, article *domain.Article) error
	Update(ctx context.Context, article *domain.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Flags reads the global articles switch.
type Flags interface {
	ArticlesEnabled(ctx context.Context) (bool, error)
}

// CreateRequest carries a new article.
type CreateRequest struct {
	Title      string  `json:"title" validate:"required,min=1,max=255"`
	Slug       string  `json:"slug" validate:"required,min=1,max=255,slug"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Content    string  `json:"content" validate:"required"`
	CoverImage *string `json:"cover_image,omitempty" validate:"omitempty,url"`
	IsActive   bool    `json:"is_active"`
}

// UpdateRequest carries the editable fields of an article. Nil fields are
// left unchanged.
type UpdateRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Slug       *string `json:"slug,omitempty" validate:"omitempty,min=1,max=255,slug"`
	Excerpt    *string `json:"excerpt,omitempty"`
	Content    *string `json:"content,omitempty"`
	CoverImage *string `json:"cover_image,omitempty" validate:"omitempty,url"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

// Service drives article publishing. Public reads are gated on the global
// articles flag; admin reads and writes are not.
type Service struct {
	repo   Repository
	flags  Flags
	logger logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, flags Flags, log logger.Logger) *Service {
	return &Service{repo: repo, flags: flags, logger: log, now: time.Now}
}

// ListPublic returns active articles for the public site. When the global
// flag is off the feature reads as absent.
func (s *Service) ListPublic(ctx context.Context) ([]domain.Article, error) {
	if err := s.requireEnabled(ctx); err != nil {
		return nil, err
	}
	return s.repo.FindActive(ctx)
}

// GetPublic returns one active article by id.
func (s *Service) GetPublic(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	if err := s.requireEnabled(ctx); err != nil {
		return nil, err
	}
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !article.IsActive {
		return nil, apperrors.ErrArticleNotFound
	}
	return article, nil
}

// GetPublicBySlug returns one active article by its slug.
func (s *Service) GetPublicBySlug(ctx context.Context, slug string) (*domain.Article, error) {
	if err := s.requireEnabled(ctx); err != nil {
		return nil, err
	}
	article, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !article.IsActive {
		return nil, apperrors.ErrArticleNotFound
	}
	return article, nil
}

// List returns every article, drafts included.
func (s *Service) List(ctx context.Context) ([]domain.Article, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new article. An article created active is stamped with a
// publication time.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*domain.Article, error) {
	article := &domain.Article{
		ID:         uuid.New(),
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
		IsActive:   req.IsActive,
	}
	if req.IsActive {
		published := s.now()
		article.PublishedAt = &published
	}
	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	s.logger.Info("Article created", map[string]interface{}{
		"article_id": article.ID.String(),
		"slug":       article.Slug,
	})
	return article, nil
}

// Update edits an article. Activating an unpublished article stamps its
// publication time; the stamp survives later deactivation.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*domain.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Slug != nil {
		article.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		article.Excerpt = req.Excerpt
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.CoverImage != nil {
		article.CoverImage = req.CoverImage
	}
	if req.IsActive != nil {
		s.applyActive(article, *req.IsActive)
	}
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// SetActive flips one article's visibility.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, enabled bool) (*domain.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.applyActive(article, enabled)
	if err := s.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	s.logger.Info("Article visibility changed", map[string]interface{}{
		"article_id": article.ID.String(),
		"enabled":    enabled,
	})
	return article, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) applyActive(article *domain.Article, enabled bool) {
	article.IsActive = enabled
	if enabled && article.PublishedAt == nil {
		published := s.now()
		article.PublishedAt = &published
	}
}

func (s *Service) requireEnabled(ctx context.Context) error {
	enabled, err := s.flags.ArticlesEnabled(ctx)
	if err != nil {
		return apperrors.Wrap(err, "read articles flag")
	}
	if !enabled {
		return apperrors.ErrArticlesDisabled
	}
	return nil
}
