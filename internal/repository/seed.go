package repository

import (
	"time"

	"github.com/shenikar/border_alert_system/internal/models"
)

// SeedUsers возвращает демонстрационных пользователей
func SeedUsers() []models.User {
	return []models.User{
		{
			ID:       "u1",
			Name:     "Colonel Manish Kumar",
			Email:    "manish.kumar@example.com",
			Rank:     "Colonel",
			Unit:     "7th Infantry Division",
			Role:     models.RoleCommander,
			Location: models.GeoCoordinate{Lat: 32.7177, Lng: 74.8573},
			Avatar:   "https://images.pexels.com/photos/7148384/pexels-photo-7148384.jpeg",
		},
		{
			ID:       "u2",
			Name:     "Vinayak Rathod",
			Email:    "vinayk.rathod@example.com",
			Rank:     "Captain",
			Unit:     "Border Security Force",
			Role:     models.RoleOfficer,
			Location: models.GeoCoordinate{Lat: 32.9686, Lng: 75.1142},
		},
		{
			ID:       "u3",
			Name:     "Major Vikram Batra",
			Email:    "vikram.batra@example.com",
			Rank:     "Major",
			Unit:     "Special Forces",
			Role:     models.RoleOfficer,
			Location: models.GeoCoordinate{Lat: 33.1055, Lng: 74.6556},
			Avatar:   "https://images.pexels.com/photos/4823233/pexels-photo-4823233.jpeg",
		},
		{
			ID:       "u4",
			Name:     "Lt. General Sunita Devi",
			Email:    "sunita.devi@example.com",
			Rank:     "Lieutenant General",
			Unit:     "Northern Command",
			Role:     models.RoleAdmin,
			Location: models.GeoCoordinate{Lat: 28.6139, Lng: 77.2090},
			Avatar:   "https://images.pexels.com/photos/6499022/pexels-photo-6499022.jpeg",
		},
	}
}

// SeedIncidents возвращает демонстрационные инциденты, время отсчитывается от now
func SeedIncidents(now time.Time) []models.Incident {
	return []models.Incident{
		{
			ID:          "i1",
			Title:       "Suspicious Movement",
			Description: "Multiple individuals spotted moving near the border fence with unknown equipment.",
			Location:    models.GeoCoordinate{Lat: 32.9686, Lng: 75.1242},
			Severity:    models.SeverityMedium,
			Status:      models.StatusInvestigating,
			ReportedAt:  now.Add(-2 * time.Hour),
			ReportedBy:  "u2",
			AssignedTo:  "u2",
			Media: []models.IncidentMedia{{
				ID:        "m1",
				Type:      models.MediaImage,
				URL:       "https://images.pexels.com/photos/7045418/pexels-photo-7045418.jpeg",
				Caption:   "Footprints near fence",
				Timestamp: now.Add(-2 * time.Hour),
			}},
			Updates: []models.IncidentUpdate{{
				ID:        "up1",
				Content:   "Investigating the area with a team of 4 officers.",
				Timestamp: now.Add(-1 * time.Hour),
				UpdatedBy: "u2",
			}},
		},
		{
			ID:          "i2",
			Title:       "Border Fence Damage",
			Description: "Section of border fence found damaged, possibly cut with tools.",
			Location:    models.GeoCoordinate{Lat: 33.0055, Lng: 74.7556},
			Severity:    models.SeverityHigh,
			Status:      models.StatusReported,
			ReportedAt:  now.Add(-12 * time.Hour),
			ReportedBy:  "u3",
			Media: []models.IncidentMedia{{
				ID:        "m2",
				Type:      models.MediaImage,
				URL:       "https://images.pexels.com/photos/113338/pexels-photo-113338.jpeg",
				Caption:   "Damaged fence section",
				Timestamp: now.Add(-12 * time.Hour),
			}},
			Updates: []models.IncidentUpdate{},
		},
		{
			ID:          "i3",
			Title:       "Unauthorized Drone Activity",
			Description: "Unidentified drone spotted flying over border area at low altitude.",
			Location:    models.GeoCoordinate{Lat: 32.8686, Lng: 74.9142},
			Severity:    models.SeverityCritical,
			Status:      models.StatusResolved,
			ReportedAt:  now.Add(-24 * time.Hour),
			ReportedBy:  "u2",
			AssignedTo:  "u3",
			Media: []models.IncidentMedia{{
				ID:        "m3",
				Type:      models.MediaVideo,
				URL:       "https://player.vimeo.com/video/517069942",
				Caption:   "Drone footage",
				Timestamp: now.Add(-24 * time.Hour),
			}},
			Updates: []models.IncidentUpdate{{
				ID:        "up2",
				Content:   "Drone was intercepted and brought down. Found to be a civilian drone that drifted from nearby village.",
				Status:    models.StatusResolved,
				Timestamp: now.Add(-18 * time.Hour),
				UpdatedBy: "u3",
			}},
		},
	}
}

// SeedZones возвращает участки границы
func SeedZones() []models.BorderZone {
	return []models.BorderZone{
		{
			ID:          "z1",
			Name:        "Northern Sector Alpha",
			ThreatLevel: models.ThreatElevated,
			Boundaries: []models.GeoCoordinate{
				{Lat: 32.9186, Lng: 75.0742},
				{Lat: 32.9486, Lng: 75.1542},
				{Lat: 32.9786, Lng: 75.1342},
				{Lat: 32.9486, Lng: 75.0542},
			},
			ResponsibleUnit: "7th Infantry Division",
		},
		{
			ID:          "z2",
			Name:        "Eastern Corridor Beta",
			ThreatLevel: models.ThreatHigh,
			Boundaries: []models.GeoCoordinate{
				{Lat: 33.0555, Lng: 74.7056},
				{Lat: 33.0855, Lng: 74.8056},
				{Lat: 33.1155, Lng: 74.7856},
				{Lat: 33.0855, Lng: 74.7056},
			},
			ResponsibleUnit: "Special Forces",
		},
		{
			ID:          "z3",
			Name:        "Western Checkpoint Gamma",
			ThreatLevel: models.ThreatNormal,
			Boundaries: []models.GeoCoordinate{
				{Lat: 32.8186, Lng: 74.8642},
				{Lat: 32.8486, Lng: 74.9442},
				{Lat: 32.8786, Lng: 74.9242},
				{Lat: 32.8486, Lng: 74.8442},
			},
			ResponsibleUnit: "Border Security Force",
		},
	}
}

// SeedAlerts возвращает стартовый набор оповещений для новой сессии
func SeedAlerts(now time.Time) []models.Alert {
	return []models.Alert{
		{
			ID:         "a1",
			IncidentID: "i1",
			Title:      "New Incident: Suspicious Movement",
			Message:    "Suspicious activity reported near Northern Sector Alpha. Please investigate immediately.",
			Severity:   models.SeverityMedium,
			Timestamp:  now.Add(-2 * time.Hour),
			Read:       false,
			Location:   models.GeoCoordinate{Lat: 32.9686, Lng: 75.1242},
		},
		{
			ID:         "a2",
			IncidentID: "i2",
			Title:      "High Priority: Border Fence Damage",
			Message:    "Border fence damage detected. Potential security breach. Immediate action required.",
			Severity:   models.SeverityHigh,
			Timestamp:  now.Add(-12 * time.Hour),
			Read:       true,
			Location:   models.GeoCoordinate{Lat: 33.0055, Lng: 74.7556},
		},
		{
			ID:         "a3",
			IncidentID: "i3",
			Title:      "Critical Alert: Unauthorized Drone",
			Message:    "Unidentified drone in restricted airspace. All units respond.",
			Severity:   models.SeverityCritical,
			Timestamp:  now.Add(-24 * time.Hour),
			Read:       true,
			Location:   models.GeoCoordinate{Lat: 32.8686, Lng: 74.9142},
		},
	}
}
