package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is an insights post surfaced on the public site, owned by the
// public store. Slug is unique and is the public lookup key.
type Article struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	Excerpt     *string    `json:"excerpt,omitempty" db:"excerpt"`
	Content     string     `json:"content" db:"content"`
	CoverImage  *string    `json:"cover_image,omitempty" db:"cover_image"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// SettingArticles gates the whole articles feature; missing reads as "true".
const SettingArticles = "articles.enabled"
