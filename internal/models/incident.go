package models

import (
	"time"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid сообщает, является ли значение допустимой степенью угрозы
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type IncidentStatus string

const (
	StatusReported      IncidentStatus = "reported"
	StatusInvestigating IncidentStatus = "investigating"
	StatusResolved      IncidentStatus = "resolved"
	StatusFalseAlarm    IncidentStatus = "false-alarm"
)

// Valid сообщает, является ли значение допустимым статусом инцидента
func (s IncidentStatus) Valid() bool {
	switch s {
	case StatusReported, StatusInvestigating, StatusResolved, StatusFalseAlarm:
		return true
	}
	return false
}

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type IncidentMedia struct {
	ID        string    `json:"id"`
	Type      MediaType `json:"type"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// IncidentUpdate запись в журнале обновлений инцидента. Пустой Status означает, что статус не менялся.
type IncidentUpdate struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Status    IncidentStatus `json:"status,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	UpdatedBy string         `json:"updated_by"`
}

type Incident struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Location    GeoCoordinate    `json:"location"`
	Severity    Severity         `json:"severity"`
	Status      IncidentStatus   `json:"status"`
	ReportedAt  time.Time        `json:"reported_at"`
	ReportedBy  string           `json:"reported_by"`
	AssignedTo  string           `json:"assigned_to,omitempty"`
	Media       []IncidentMedia  `json:"media,omitempty"`
	Updates     []IncidentUpdate `json:"updates"`
}

// Clone возвращает копию инцидента, не разделяющую слайсы с оригиналом
func (i Incident) Clone() Incident {
	out := i
	if i.Media != nil {
		out.Media = append([]IncidentMedia(nil), i.Media...)
	}
	out.Updates = append(make([]IncidentUpdate, 0, len(i.Updates)), i.Updates...)
	return out
}

// IncidentFilter параметры выборки списка инцидентов. Пустые поля не фильтруют.
type IncidentFilter struct {
	Search   string
	Status   IncidentStatus
	Severity Severity
}
