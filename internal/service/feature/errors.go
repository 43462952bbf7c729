package feature

import "errors"

// Sentinel errors for the feature service layer.
var (
	ErrNotFound           = errors.New("feature not found")
	ErrNameTaken          = errors.New("feature name already in use")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrAttachmentNotFound = errors.New("brand feature not found")
	ErrInvalidInput       = errors.New("invalid input")
)
