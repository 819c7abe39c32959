package models

type ThreatLevel string

const (
	ThreatNormal   ThreatLevel = "normal"
	ThreatElevated ThreatLevel = "elevated"
	ThreatHigh     ThreatLevel = "high"
)

// BorderZone участок границы с закрепленным подразделением
type BorderZone struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ThreatLevel     ThreatLevel     `json:"threat_level"`
	Boundaries      []GeoCoordinate `json:"boundaries"`
	ResponsibleUnit string          `json:"responsible_unit"`
}
