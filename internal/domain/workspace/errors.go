package workspace

import "errors"

var (
	// ErrInvalidTenant is returned when a tenant id is empty
	ErrInvalidTenant = errors.New("tenant is required")
	// ErrCorruptValue is returned when a stored value cannot be decoded
	ErrCorruptValue = errors.New("stored value is corrupt")
)
