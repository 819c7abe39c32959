package repository

import (
	"context"

	"github.com/shenikar/border_alert_system/internal/models"
)

// ZoneRepository отдает неизменяемый список участков границы
type ZoneRepository struct {
	zones []models.BorderZone
}

func NewZoneRepository(zones []models.BorderZone) *ZoneRepository {
	return &ZoneRepository{zones: zones}
}

func (r *ZoneRepository) ListZones(_ context.Context) ([]models.BorderZone, error) {
	out := make([]models.BorderZone, len(r.zones))
	for i, z := range r.zones {
		z.Boundaries = append([]models.GeoCoordinate(nil), z.Boundaries...)
		out[i] = z
	}
	return out, nil
}
