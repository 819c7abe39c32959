package models

type Role string

const (
	RoleOfficer   Role = "officer"
	RoleCommander Role = "commander"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Rank     string        `json:"rank"`
	Unit     string        `json:"unit"`
	Role     Role          `json:"role"`
	Location GeoCoordinate `json:"location"`
	Avatar   string        `json:"avatar,omitempty"`
}
