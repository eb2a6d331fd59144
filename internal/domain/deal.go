package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "rensadmin/pkg/errors"
)

// DealStatus enumerates deal review states.
type DealStatus string

const (
	DealPending  DealStatus = "PENDING"
	DealApproved DealStatus = "APPROVED"
	DealRejected DealStatus = "REJECTED"
)

// ParseDealStatus validates a deal status string case-insensitively.
func ParseDealStatus(s string) (DealStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(DealPending):
		return DealPending, nil
	case string(DealApproved):
		return DealApproved, nil
	case string(DealRejected):
		return DealRejected, nil
	}
	return "", apperrors.ErrInvalidStatus
}

// AccessTier controls which user tiers may view a deal.
type AccessTier string

const (
	AccessFree       AccessTier = "FREE"
	AccessPremium    AccessTier = "PREMIUM"
	AccessEnterprise AccessTier = "ENTERPRISE"
)

// ParseAccessTier validates an access tier string case-insensitively.
func ParseAccessTier(s string) (AccessTier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(AccessFree):
		return AccessFree, nil
	case string(AccessPremium):
		return AccessPremium, nil
	case string(AccessEnterprise):
		return AccessEnterprise, nil
	}
	return "", apperrors.ErrInvalidAccessTier
}

// Deal is a curated property investment opportunity, owned by the public store.
type Deal struct {
	ID                 uuid.UUID        `json:"id" db:"id"`
	Title              string           `json:"title" db:"title"`
	Description        *string          `json:"description,omitempty" db:"description"`
	City               string           `json:"city" db:"city"`
	Area               *string          `json:"area,omitempty" db:"area"`
	BuildingName       *string          `json:"building_name,omitempty" db:"building_name"`
	PropertyType       *string          `json:"property_type,omitempty" db:"property_type"`
	Bedrooms           *string          `json:"bedrooms,omitempty" db:"bedrooms"`
	SizeSqft           *decimal.Decimal `json:"size_sqft,omitempty" db:"size_sqft"`
	AskingPrice        *decimal.Decimal `json:"asking_price,omitempty" db:"asking_price"`
	EstimatedValue     *decimal.Decimal `json:"estimated_value,omitempty" db:"estimated_value"`
	ProjectedRentYield *decimal.Decimal `json:"projected_rent_yield,omitempty" db:"projected_rent_yield"`
	DiscountPercent    *decimal.Decimal `json:"discount_percent,omitempty" db:"discount_percent"`
	ImageURL           *string          `json:"image_url,omitempty" db:"image_url"`
	ListingURL         *string          `json:"listing_url,omitempty" db:"listing_url"`
	Status             DealStatus       `json:"status" db:"status"`
	AccessTier         AccessTier       `json:"access_tier" db:"access_tier"`
	IsActive           bool             `json:"is_active" db:"is_active"`
	BatchDate          time.Time        `json:"batch_date" db:"batch_date"`
	ApprovedAt         *time.Time       `json:"approved_at,omitempty" db:"approved_at"`
	ApprovedBy         *string          `json:"approved_by,omitempty" db:"approved_by"`
	CreatedAt          time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at" db:"updated_at"`
}

// VisibleToPublic reports whether the deal appears on public listings.
func (d *Deal) VisibleToPublic() bool {
	return d.Status == DealApproved && d.IsActive
}

// RelationKind labels an edge in the deal relationship graph.
type RelationKind string

const (
	RelationListed     RelationKind = "LISTED"
	RelationRecentSale RelationKind = "RECENT_SALE"
)

// DealRelation is one edge of the relationship graph: a hub deal points at a
// related deal as either a comparable listing or a recent sale. The triple
// (hub_id, related_id, kind) is unique.
type DealRelation struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	HubID     uuid.UUID    `json:"hub_id" db:"hub_id"`
	RelatedID uuid.UUID    `json:"related_id" db:"related_id"`
	Kind      RelationKind `json:"kind" db:"kind"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// DealTranslation is one localized field value of a deal, keyed by the
// unique triple (deal_id, language_code, field_name). Writes find-or-create
// by the triple, so duplicates cannot appear.
type DealTranslation struct {
	ID              uuid.UUID `json:"id" db:"id"`
	DealID          uuid.UUID `json:"deal_id" db:"deal_id"`
	LanguageCode    string    `json:"language_code" db:"language_code"`
	FieldName       string    `json:"field_name" db:"field_name"`
	TranslatedValue string    `json:"translated_value" db:"translated_value"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Translation is one UI string keyed by (language_code, namespace,
// translation_key).
type Translation struct {
	ID             uuid.UUID `json:"id" db:"id"`
	LanguageCode   string    `json:"language_code" db:"language_code"`
	Namespace      string    `json:"namespace" db:"namespace"`
	TranslationKey string    `json:"translation_key" db:"translation_key"`
	Value          string    `json:"value" db:"value"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// Language is a supported locale. Exactly one language is the default; the
// default can be neither disabled nor deleted.
type Language struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Code       string    `json:"code" db:"code"`
	Name       string    `json:"name" db:"name"`
	NativeName *string   `json:"native_name,omitempty" db:"native_name"`
	IsEnabled  bool      `json:"is_enabled" db:"is_enabled"`
	IsDefault  bool      `json:"is_default" db:"is_default"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// ContentType enumerates landing-page field payload types.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentJSON  ContentType = "json"
)

// ParseContentType validates a content type string case-insensitively.
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ContentText):
		return ContentText, nil
	case string(ContentImage):
		return ContentImage, nil
	case string(ContentVideo):
		return ContentVideo, nil
	case string(ContentJSON):
		return ContentJSON, nil
	}
	return "", apperrors.ErrInvalidContentType
}

// LandingPageContent is one editable field on the public landing page, keyed
// by (section, language_code, field_key).
type LandingPageContent struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Section      string      `json:"section" db:"section"`
	LanguageCode string      `json:"language_code" db:"language_code"`
	FieldKey     string      `json:"field_key" db:"field_key"`
	ContentType  ContentType `json:"content_type" db:"content_type"`
	Value        string      `json:"value" db:"value"`
	UpdatedBy    *string     `json:"updated_by,omitempty" db:"updated_by"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// ReportSection is a slot in the sample-report layout. DisplayOrder drives
// the per-section document cap.
type ReportSection struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  *string    `json:"description,omitempty" db:"description"`
	AccessTier   AccessTier `json:"access_tier" db:"access_tier"`
	DisplayOrder int        `json:"display_order" db:"display_order"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// DocumentCap is the number of documents the section may hold. The gallery
// section (display order 5) holds up to eight; every other section holds one.
func (s *ReportSection) DocumentCap() int {
	if s.DisplayOrder == 5 {
		return 8
	}
	return 1
}

// ReportDocument is an uploaded file attached to a report section, stored
// inline as base64.
type ReportDocument struct {
	ID          uuid.UUID `json:"id" db:"id"`
	SectionID   uuid.UUID `json:"section_id" db:"section_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	ContentType string    `json:"content_type" db:"content_type"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	FileContent string    `json:"-" db:"file_content"`
	UploadedBy  *string   `json:"uploaded_by,omitempty" db:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AppSetting is a key/value feature flag in the public store.
type AppSetting struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// SettingWeeklyDeals gates the weekly-deals feature; missing reads as "true".
const SettingWeeklyDeals = "weeklyDeals.enabled"

// AdminUser is a backoffice operator account, owned by the public store.
type AdminUser struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     *string    `json:"full_name,omitempty" db:"full_name"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
