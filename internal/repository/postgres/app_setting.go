package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type AppSettingRepository struct {
	db *sqlx.DB
}

func NewAppSettingRepository(db *sqlx.DB) *AppSettingRepository {
	return &AppSettingRepository{db: db}
}

func (r *AppSettingRepository) FindByKey(ctx context.Context, key string) (*domain.AppSetting, error) {
	var setting domain.AppSetting
	query := `SELECT id, key, value, updated_at FROM app_settings WHERE key = $1`

	err := r.db.GetContext(ctx, &setting, query, key)
	if err == sql.ErrNoRows {
		return nil, errors.ErrSettingNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find app setting")
	}
	return &setting, nil
}

func (r *AppSettingRepository) Upsert(ctx context.Context, key, value string) (*domain.AppSetting, error) {
	var setting domain.AppSetting
	query := `
		INSERT INTO app_settings (id, key, value, updated_at)
		VALUES (gen_random_uuid(), $1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING id, key, value, updated_at`

	err := r.db.GetContext(ctx, &setting, query, key, value)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert app setting")
	}
	return &setting, nil
}
