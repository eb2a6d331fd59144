// Package settings manages the key/value feature flags in the public store.
package settings

import (
	"context"
	"errors"
	"strconv"

	"rensadmin/internal/domain"
	apperrors "rensadmin/pkg/errors"
	"rensadmin/pkg/logger"
)

// Repository is the public-store surface for app settings. Upsert writes a
// value by key, creating the row when missing.
type Repository interface {
	FindByKey(ctx context.Context, key string) (*domain.AppSetting, error)
	Upsert(ctx context.Context, key, value string) (*domain.AppSetting, error)
}

type Service struct {
	repo   Repository
	logger logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// WeeklyDealsEnabled reads the weekly-deals flag.
func (s *Service) WeeklyDealsEnabled(ctx context.Context) (bool, error) {
	return s.flagEnabled(ctx, domain.SettingWeeklyDeals)
}

// SetWeeklyDeals flips the weekly-deals flag.
func (s *Service) SetWeeklyDeals(ctx context.Context, enabled bool) (*domain.AppSetting, error) {
	return s.setFlag(ctx, domain.SettingWeeklyDeals, enabled)
}

// ArticlesEnabled reads the global articles flag.
func (s *Service) ArticlesEnabled(ctx context.Context) (bool, error) {
	return s.flagEnabled(ctx, domain.SettingArticles)
}

// SetArticles flips the global articles flag.
func (s *Service) SetArticles(ctx context.Context, enabled bool) (*domain.AppSetting, error) {
	return s.setFlag(ctx, domain.SettingArticles, enabled)
}

// flagEnabled reads a boolean flag. A missing or unparseable row reads as
// enabled, matching the public site's default.
func (s *Service) flagEnabled(ctx context.Context, key string) (bool, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrSettingNotFound) {
			return true, nil
		}
		return false, apperrors.Wrap(err, "read feature flag")
	}
	enabled, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return true, nil
	}
	return enabled, nil
}

func (s *Service) setFlag(ctx context.Context, key string, enabled bool) (*domain.AppSetting, error) {
	setting, err := s.repo.Upsert(ctx, key, strconv.FormatBool(enabled))
	if err != nil {
		return nil, apperrors.Wrap(err, "write feature flag")
	}
	s.logger.Info("Feature flag updated", map[string]interface{}{
		"key":     key,
		"enabled": enabled,
	})
	return setting, nil
}
