package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"rensadmin/internal/domain"
	"rensadmin/pkg/errors"
)

type DeviceRepository struct {
	db *sqlx.DB
}

func NewDeviceRepository(db *sqlx.DB) *DeviceRepository {
	return &DeviceRepository{db: db}
}

// Snapshot loads every registration device record for the dashboard
// device-type breakdown.
func (r *DeviceRepository) Snapshot(ctx context.Context) ([]domain.Device, error) {
	devices := []domain.Device{}
	query := `SELECT id, user_id, user_agent, created_at FROM devices ORDER BY created_at`

	err := r.db.SelectContext(ctx, &devices, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot devices")
	}
	return devices, nil
}
