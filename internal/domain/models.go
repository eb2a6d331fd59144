// Package domain holds the entities shared by services, handlers, and
// repositories. Backend-store entities (users, subscriptions, devices,
// analysis requests) live in this file; public-store entities are in deal.go.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "rensadmin/pkg/errors"
)

// UserTier is the subscription level of a platform user.
type UserTier string

const (
	TierFree       UserTier = "FREE"
	TierPremium    UserTier = "PREMIUM"
	TierEnterprise UserTier = "ENTERPRISE"
)

// ParseUserTier validates a tier string case-insensitively.
func ParseUserTier(s string) (UserTier, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(TierFree):
		return TierFree, nil
	case string(TierPremium):
		return TierPremium, nil
	case string(TierEnterprise):
		return TierEnterprise, nil
	}
	return "", apperrors.ErrInvalidTier
}

// Index returns the fixed bucket position used by registration charts:
// FREE=0, PREMIUM=1, ENTERPRISE=2.
func (t UserTier) Index() int {
	switch t {
	case TierPremium:
		return 1
	case TierEnterprise:
		return 2
	default:
		return 0
	}
}

// User is a platform end user, owned by the backend store.
type User struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password_hash"`
	FirstName        *string    `json:"first_name,omitempty" db:"first_name"`
	LastName         *string    `json:"last_name,omitempty" db:"last_name"`
	Phone            *string    `json:"phone,omitempty" db:"phone"`
	Budget           *string    `json:"budget,omitempty" db:"budget"`
	Portfolio        *string    `json:"portfolio,omitempty" db:"portfolio"`
	GoalsJSON        *string    `json:"-" db:"goals_json"`
	RegistrationPlan *string    `json:"registration_plan,omitempty" db:"registration_plan"`
	UserTier         UserTier   `json:"user_tier" db:"user_tier"`
	CustomerID       *string    `json:"customer_id,omitempty" db:"customer_id"`
	IsActive         bool       `json:"is_active" db:"is_active"`
	EmailVerified    bool       `json:"email_verified" db:"email_verified"`
	CreatedAt        *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// Goals decodes the stored JSON list; malformed JSON reads as an empty list.
func (u *User) Goals() []string {
	if u.GoalsJSON == nil || strings.TrimSpace(*u.GoalsJSON) == "" {
		return []string{}
	}
	var goals []string
	if err := json.Unmarshal([]byte(*u.GoalsJSON), &goals); err != nil {
		return []string{}
	}
	return goals
}

// MarshalJSON adds the decoded goals list to the serialized user, so API
// consumers never see the raw stored JSON string.
func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		alias
		Goals []string `json:"goals"`
	}{alias(u), u.Goals()})
}

// SubscriptionStatus enumerates subscription states.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
)

// ParseSubscriptionStatus validates a status string case-insensitively.
func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(SubscriptionActive):
		return SubscriptionActive, nil
	case string(SubscriptionCancelled):
		return SubscriptionCancelled, nil
	case string(SubscriptionExpired):
		return SubscriptionExpired, nil
	}
	return "", apperrors.ErrInvalidStatus
}

// Subscription links a user to a paid plan. PlanType mirrors the tier
// pricing model: PREMIUM is billed monthly, ENTERPRISE yearly, FREE is zero.
type Subscription struct {
	ID                   uuid.UUID          `json:"id" db:"id"`
	UserID               uuid.UUID          `json:"user_id" db:"user_id"`
	UserEmail            string             `json:"user_email" db:"user_email"`
	PlanType             UserTier           `json:"plan_type" db:"plan_type"`
	Status               SubscriptionStatus `json:"status" db:"status"`
	StartDate            *time.Time         `json:"start_date,omitempty" db:"start_date"`
	EndDate              *time.Time         `json:"end_date,omitempty" db:"end_date"`
	StripeSubscriptionID *string            `json:"stripe_subscription_id,omitempty" db:"stripe_subscription_id"`
	CreatedAt            time.Time          `json:"created_at" db:"created_at"`
}

// Device records the user agent seen at a user's registration. Read-only
// input for the device-type dashboard breakdown.
type Device struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	UserAgent *string   `json:"user_agent,omitempty" db:"user_agent"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AnalysisRequestStatus enumerates analysis request states.
type AnalysisRequestStatus string

const (
	AnalysisPending    AnalysisRequestStatus = "PENDING"
	AnalysisInProgress AnalysisRequestStatus = "IN_PROGRESS"
	AnalysisCompleted  AnalysisRequestStatus = "COMPLETED"
	AnalysisCancelled  AnalysisRequestStatus = "CANCELLED"
)

// ParseAnalysisRequestStatus validates a status string case-insensitively.
func ParseAnalysisRequestStatus(s string) (AnalysisRequestStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(AnalysisPending):
		return AnalysisPending, nil
	case string(AnalysisInProgress):
		return AnalysisInProgress, nil
	case string(AnalysisCompleted):
		return AnalysisCompleted, nil
	case string(AnalysisCancelled):
		return AnalysisCancelled, nil
	}
	return "", apperrors.ErrInvalidStatus
}

// AnalysisRequest is a user-submitted property analysis job whose result is
// produced by an external service.
type AnalysisRequest struct {
	ID             uuid.UUID             `json:"id" db:"id"`
	UserID         *uuid.UUID            `json:"user_id,omitempty" db:"user_id"`
	Email          string                `json:"email" db:"email"`
	City           string                `json:"city" db:"city"`
	Area           string                `json:"area" db:"area"`
	BuildingName   string                `json:"building_name" db:"building_name"`
	ListingURL     *string               `json:"listing_url,omitempty" db:"listing_url"`
	PropertyType   string                `json:"property_type" db:"property_type"`
	Bedrooms       string                `json:"bedrooms" db:"bedrooms"`
	Size           *string               `json:"size,omitempty" db:"size"`
	AskingPrice    *string               `json:"asking_price,omitempty" db:"asking_price"`
	AnalysisID     *string               `json:"analysis_id,omitempty" db:"analysis_id"`
	AnalysisResult json.RawMessage       `json:"analysis_result,omitempty" db:"analysis_result"`
	Status         AnalysisRequestStatus `json:"status" db:"status"`
	CreatedAt      time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at" db:"updated_at"`
}
