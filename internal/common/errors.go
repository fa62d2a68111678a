// Package common defines sentinel errors and constants shared by the
// server, the console and their tests. Match errors with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrInvalidStatus is returned when a status tag is outside its record kind's set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidDate is returned for malformed calendar dates.
	ErrInvalidDate = errors.New("invalid date")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrLockedOut    = errors.New("too many failed login attempts")

	// ErrStorageDisabled is returned when file content arrives but no object storage is configured.
	ErrStorageDisabled = errors.New("object storage disabled")
)
