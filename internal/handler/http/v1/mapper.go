package v1

import (
	"github.com/shenikar/border_alert_system/internal/geo"
	"github.com/shenikar/border_alert_system/internal/models"
	"github.com/shenikar/border_alert_system/internal/service"
)

func toGeoPoint(c models.GeoCoordinate) GeoPoint {
	return GeoPoint{Lat: c.Lat, Lng: c.Lng}
}

// DTOToIncidentModel преобразует DTO создания в доменную модель.
// Автор инцидента берется из сессии, а не из тела запроса.
func DTOToIncidentModel(dto CreateIncidentRequest, reportedBy string) *models.Incident {
	incident := &models.Incident{
		Title:       dto.Title,
		Description: dto.Description,
		Location:    models.GeoCoordinate{Lat: *dto.Latitude, Lng: *dto.Longitude},
		Severity:    models.Severity(dto.Severity),
		ReportedBy:  reportedBy,
		AssignedTo:  dto.AssignedTo,
	}
	for _, m := range dto.Media {
		incident.Media = append(incident.Media, models.IncidentMedia{
			Type:    models.MediaType(m.Type),
			URL:     m.URL,
			Caption: m.Caption,
		})
	}
	return incident
}

// DTOToSignupInput преобразует DTO регистрации во входные данные сервиса
func DTOToSignupInput(dto SignupRequest) service.SignupInput {
	input := service.SignupInput{
		Name:  dto.Name,
		Email: dto.Email,
		Rank:  dto.Rank,
		Unit:  dto.Unit,
	}
	if dto.Latitude != nil && dto.Longitude != nil {
		input.Location = &models.GeoCoordinate{Lat: *dto.Latitude, Lng: *dto.Longitude}
	}
	return input
}

func ModelToUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Rank:     u.Rank,
		Unit:     u.Unit,
		Role:     string(u.Role),
		Location: toGeoPoint(u.Location),
		Avatar:   u.Avatar,
	}
}

func SessionToResponse(s *service.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		User:      ModelToUserResponse(s.User),
		StartedAt: s.StartedAt,
	}
}

// ModelToAlertResponse преобразует оповещение, расстояние считается от точки from
func ModelToAlertResponse(a models.Alert, from models.GeoCoordinate) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		IncidentID: a.IncidentID,
		Title:      a.Title,
		Message:    a.Message,
		Severity:   string(a.Severity),
		Timestamp:  a.Timestamp,
		Read:       a.Read,
		Location:   toGeoPoint(a.Location),
		DistanceKm: geo.DistanceKm(from, a.Location),
	}
}

func ModelsToAlertResponses(alerts []models.Alert, from models.GeoCoordinate) []AlertResponse {
	responses := make([]AlertResponse, len(alerts))
	for i, a := range alerts {
		responses[i] = ModelToAlertResponse(a, from)
	}
	return responses
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model models.Incident) IncidentResponse {
	resp := IncidentResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Location:    toGeoPoint(model.Location),
		Severity:    string(model.Severity),
		Status:      string(model.Status),
		ReportedAt:  model.ReportedAt,
		ReportedBy:  model.ReportedBy,
		AssignedTo:  model.AssignedTo,
		Media:       make([]MediaResponse, len(model.Media)),
		Updates:     make([]UpdateResponse, len(model.Updates)),
	}
	for i, m := range model.Media {
		resp.Media[i] = MediaResponse{
			ID:        m.ID,
			Type:      string(m.Type),
			URL:       m.URL,
			Caption:   m.Caption,
			Timestamp: m.Timestamp,
		}
	}
	for i, u := range model.Updates {
		resp.Updates[i] = UpdateResponse{
			ID:        u.ID,
			Content:   u.Content,
			Status:    string(u.Status),
			Timestamp: u.Timestamp,
			UpdatedBy: u.UpdatedBy,
		}
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []models.Incident) []IncidentResponse {
	responses := make([]IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

func ModelsToZoneResponses(zones []models.BorderZone) []ZoneResponse {
	responses := make([]ZoneResponse, len(zones))
	for i, z := range zones {
		boundaries := make([]GeoPoint, len(z.Boundaries))
		for j, b := range z.Boundaries {
			boundaries[j] = toGeoPoint(b)
		}
		responses[i] = ZoneResponse{
			ID:              z.ID,
			Name:            z.Name,
			ThreatLevel:     string(z.ThreatLevel),
			Boundaries:      boundaries,
			ResponsibleUnit: z.ResponsibleUnit,
		}
	}
	return responses
}
