package lead

import "errors"

// Sentinel errors for the lead service layer.
var (
	ErrNotFound      = errors.New("lead not found")
	ErrBrandNotFound = errors.New("brand not found")
	ErrInvalidEmail  = errors.New("invalid email address")
)
