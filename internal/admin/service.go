// Package admin implements the backoffice operations over the backend store:
// user and subscription management, analysis requests, and the dashboard
// statistics assembly.
package admin

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"rensadmin/internal/domain"
	"rensadmin/internal/stats"
	"rensadmin/pkg/logger"
)

// ListParams is the pagination and sorting envelope shared by the list
// endpoints. Zero values fall back to page 0, size 20, createdAt desc.
type ListParams struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalize clamps the params to safe defaults. Sort columns are whitelisted
// per repository; an unknown SortBy falls back to created_at there.
func (p ListParams) Normalize() ListParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 || p.Size > 200 {
		p.Size = 20
	}
	if strings.ToLower(p.SortDir) != "asc" {
		p.SortDir = "desc"
	} else {
		p.SortDir = "asc"
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p ListParams) Offset() int { return p.Page * p.Size }

// UserRepository is the backend-store surface for platform users.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindAll(ctx context.Context, params ListParams) ([]domain.User, error)
	CountAll(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// SubscriptionRepository is the backend-store surface for subscriptions.
// CancelCascade persists the cancelled subscription and resets the owning
// user's tier in a single transaction.
type SubscriptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	FindAll(ctx context.Context, params ListParams) ([]domain.Subscription, error)
	CountAll(ctx context.Context) (int, error)
	Snapshot(ctx context.Context) ([]domain.Subscription, error)
	CancelCascade(ctx context.Context, sub *domain.Subscription, downgradeTo domain.UserTier) error
}

// DeviceRepository exposes the registration-device snapshot for the
// dashboard breakdown.
type DeviceRepository interface {
	Snapshot(ctx context.Context) ([]domain.Device, error)
}

// AnalysisRepository is the backend-store surface for analysis requests.
type AnalysisRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.AnalysisRequest, error)
	FindAll(ctx context.Context, params ListParams) ([]domain.AnalysisRequest, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.AnalysisRequestStatus) (int64, error)
	Update(ctx context.Context, req *domain.AnalysisRequest) error
}

// AnalysisClient fetches a finished analysis result from the external
// analysis service.
type AnalysisClient interface {
	FetchResult(ctx context.Context, analysisID string) (json.RawMessage, error)
}

// StatsCache holds assembled dashboard stats between polls.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service bundles the backoffice operations.
type Service struct {
	users          UserRepository
	subscriptions  SubscriptionRepository
	devices        DeviceRepository
	analysis       AnalysisRepository
	analysisClient AnalysisClient
	statsBuilder   *stats.Builder
	statsCache     StatsCache
	statsTTL       time.Duration
	logger         logger.Logger
	now            func() time.Time
}

func NewService(
	users UserRepository,
	subscriptions SubscriptionRepository,
	devices DeviceRepository,
	analysis AnalysisRepository,
	analysisClient AnalysisClient,
	pricing stats.PlanPricing,
	log logger.Logger,
) *Service {
	return &Service{
		users:          users,
		subscriptions:  subscriptions,
		devices:        devices,
		analysis:       analysis,
		analysisClient: analysisClient,
		statsBuilder:   stats.NewBuilder(pricing),
		logger:         log,
		now:            time.Now,
	}
}

// UseStatsCache serves dashboard stats from the cache for ttl between
// rebuilds. The dashboard polls aggressively; slightly stale numbers are
// acceptable there.
func (s *Service) UseStatsCache(cache StatsCache, ttl time.Duration) {
	s.statsCache = cache
	s.statsTTL = ttl
}
