package campaign

import "errors"

// Sentinel errors for the campaign service layer.
var (
	ErrNotFound        = errors.New("campaign not found")
	ErrFeatureNotFound = errors.New("campaign feature not found")
	ErrBrandMismatch   = errors.New("brand feature belongs to a different brand")
	ErrInvalidInput    = errors.New("invalid input")
)
