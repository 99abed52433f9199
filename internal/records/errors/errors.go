package errors

import "errors"

var (
	ErrTreatmentNotFound = errors.New("treatment not found")

	ErrInvestigationNotFound = errors.New("investigation not found")

	ErrInvalidID = errors.New("invalid record ID format")
)
