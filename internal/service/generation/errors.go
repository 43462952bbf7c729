package generation

import "errors"

// Sentinel errors for the generation service layer.
var (
	ErrNotFound      = errors.New("generated email not found")
	ErrLeadNotFound  = errors.New("lead not found")
	ErrBrandNotFound = errors.New("brand not found")
)
