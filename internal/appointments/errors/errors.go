package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	ErrInvalidTimeRange = errors.New("end time must be after start time")

	ErrAlreadyCancelled = errors.New("appointment is already cancelled")
)
