package v1

import (
	"time"
)

// GeoPoint DTO координат
// @Description DTO координат
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LoginRequest DTO для входа
// @Description DTO для входа
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest DTO для регистрации. Координаты задаются парой или не задаются вовсе.
// @Description DTO для регистрации
type SignupRequest struct {
	Name      string   `json:"name" validate:"omitempty,max=255"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	Rank      string   `json:"rank" validate:"omitempty,max=100"`
	Unit      string   `json:"unit" validate:"omitempty,max=255"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// UserResponse DTO пользователя
// @Description DTO пользователя
type UserResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Rank     string   `json:"rank"`
	Unit     string   `json:"unit"`
	Role     string   `json:"role"`
	Location GeoPoint `json:"location"`
	Avatar   string   `json:"avatar,omitempty"`
}

// SessionResponse DTO открытой сессии
// @Description DTO открытой сессии
type SessionResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	StartedAt time.Time    `json:"started_at"`
}

// AlertResponse DTO оповещения. DistanceKm считается от местоположения текущего пользователя.
// @Description DTO оповещения
type AlertResponse struct {
	ID         string    `json:"id"`
	IncidentID string    `json:"incident_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Severity   string    `json:"severity"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
	Location   GeoPoint  `json:"location"`
	DistanceKm float64   `json:"distance_km"`
}

// AlertDetailResponse DTO оповещения вместе со связанным инцидентом
// @Description DTO оповещения вместе со связанным инцидентом
type AlertDetailResponse struct {
	Alert    AlertResponse     `json:"alert"`
	Incident *IncidentResponse `json:"incident,omitempty"`
}

// NearbyAlertsResponse DTO оповещений в радиусе пользователя
// @Description DTO оповещений в радиусе пользователя
type NearbyAlertsResponse struct {
	RadiusKm float64         `json:"radius_km"`
	Alerts   []AlertResponse `json:"alerts"`
}

// UnreadCountResponse DTO количества непрочитанных оповещений
// @Description DTO количества непрочитанных оповещений
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MediaRequest DTO вложения инцидента
// @Description DTO вложения инцидента
type MediaRequest struct {
	Type    string `json:"type" validate:"required,oneof=image video"`
	URL     string `json:"url" validate:"required,url"`
	Caption string `json:"caption,omitempty" validate:"omitempty,max=500"`
}

// CreateIncidentRequest DTO для создания инцидента
// @Description DTO для создания инцидента
type CreateIncidentRequest struct {
	Title       string         `json:"title" validate:"required,min=2,max=255"`
	Description string         `json:"description,omitempty"`
	Latitude    *float64       `json:"latitude" validate:"required,latitude"`
	Longitude   *float64       `json:"longitude" validate:"required,longitude"`
	Severity    string         `json:"severity" validate:"required,oneof=low medium high critical"`
	AssignedTo  string         `json:"assigned_to,omitempty"`
	Media       []MediaRequest `json:"media,omitempty" validate:"omitempty,dive"`
}

// AppendUpdateRequest DTO записи в журнал обновлений инцидента
// @Description DTO записи в журнал обновлений инцидента
type AppendUpdateRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=reported investigating resolved false-alarm"`
}

// MediaResponse DTO вложения
// @Description DTO вложения
type MediaResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// UpdateResponse DTO записи журнала обновлений
// @Description DTO записи журнала обновлений
type UpdateResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Status    string    `json:"status,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updated_by"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    GeoPoint         `json:"location"`
	Severity    string           `json:"severity"`
	Status      string           `json:"status"`
	ReportedAt  time.Time        `json:"reported_at"`
	ReportedBy  string           `json:"reported_by"`
	AssignedTo  string           `json:"assigned_to,omitempty"`
	Media       []MediaResponse  `json:"media"`
	Updates     []UpdateResponse `json:"updates"`
}

// ZoneResponse DTO участка границы
// @Description DTO участка границы
type ZoneResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	ThreatLevel     string     `json:"threat_level"`
	Boundaries      []GeoPoint `json:"boundaries"`
	ResponsibleUnit string     `json:"responsible_unit"`
}

// DashboardResponse DTO сводки для главной страницы
// @Description DTO сводки для главной страницы
type DashboardResponse struct {
	ActiveIncidents int                `json:"active_incidents"`
	MonitoredZones  int                `json:"monitored_zones"`
	UnreadAlerts    int                `json:"unread_alerts"`
	NearbyAlerts    []AlertResponse    `json:"nearby_alerts"`
	RecentIncidents []IncidentResponse `json:"recent_incidents"`
}
