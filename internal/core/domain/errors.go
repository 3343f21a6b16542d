package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid request")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrConflict           = errors.New("resource was modified concurrently")
	ErrInvalidTransition  = errors.New("invalid status transition")

	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrApartmentNotFound   = errors.New("apartment not found")
	ErrMaintenanceNotFound = errors.New("maintenance request not found")
	ErrVisitorNotFound     = errors.New("visitor not found")
	ErrSessionNotFound     = errors.New("session not found")
)
