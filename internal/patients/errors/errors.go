package errors

import "errors"

var (
	ErrNotFound = errors.New("patient not found")

	ErrInvalidID = errors.New("invalid patient ID format")

	ErrDuplicateMRN = errors.New("patient with this MRN already exists")
)
