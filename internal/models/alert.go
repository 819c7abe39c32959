package models

import "time"

// Alert оповещение, привязанное к инциденту и точке на карте
type Alert struct {
	ID         string        `json:"id"`
	IncidentID string        `json:"incident_id"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Severity   Severity      `json:"severity"`
	Timestamp  time.Time     `json:"timestamp"`
	Read       bool          `json:"read"`
	Location   GeoCoordinate `json:"location"`
}
