package service

import "errors"

var (
	ErrIncidentNotFound   = errors.New("incident not found")
	ErrInvalidIncident    = errors.New("invalid incident")
	ErrEmptyContent       = errors.New("update content must not be empty")
	ErrInvalidStatus      = errors.New("invalid incident status")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
)
