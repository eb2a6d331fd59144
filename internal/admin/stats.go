package admin

import (
	"context"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
)

// DashboardStats loads the full backend-store snapshot and assembles the
// dashboard report as of now. Snapshot reads are not transactional across
// the three tables; the dashboard tolerates that skew.
const statsCacheKey = "admin:dashboard-stats"

func (s *Service) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.statsCache != nil {
		var cached domain.DashboardStats
		if err := s.statsCache.Get(ctx, statsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	users, err := s.users.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "load user snapshot")
	}
	subs, err := s.subscriptions.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "load subscription snapshot")
	}
	devices, err := s.devices.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "load device snapshot")
	}
	pending, err := s.analysis.CountByStatus(ctx, domain.AnalysisPending)
	if err != nil {
		return nil, apperrors.Wrap(err, "count pending analysis requests")
	}

	out := s.statsBuilder.Build(users, subs, devices, pending, s.now())

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, statsCacheKey, &out, s.statsTTL); err != nil {
			s.logger.Warn("Failed to cache dashboard stats", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	return &out, nil
}
