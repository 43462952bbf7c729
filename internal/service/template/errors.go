package template

import "errors"

// Sentinel errors for the template service layer.
var (
	ErrNotFound      = errors.New("template not found")
	ErrBrandNotFound = errors.New("brand not found")
	ErrInvalidInput  = errors.New("invalid input")
)
