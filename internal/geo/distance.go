package geo

import (
	"math"

	"github.com/shenikar/border_alert_system/internal/models"
)

// EarthRadiusKm средний радиус Земли
const EarthRadiusKm = 6371.0

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceKm возвращает расстояние по большому кругу между двумя точками (формула гаверсинусов)
func DistanceKm(a, b models.GeoCoordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*sinLng*sinLng

	// Погрешность округления может вывести h за пределы [0, 1]
	h = math.Min(math.Max(h, 0), 1)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Within сообщает, лежит ли точка b не дальше radiusKm от a.
// Граница радиуса включается с допуском на ошибку вычислений.
func Within(a, b models.GeoCoordinate, radiusKm float64) bool {
	return DistanceKm(a, b) <= radiusKm+boundaryToleranceKm
}

const boundaryToleranceKm = 1e-9
