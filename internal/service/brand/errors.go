package brand

import "errors"

// Sentinel errors for the brand service layer.
var (
	ErrNotFound     = errors.New("brand not found")
	ErrSlugTaken    = errors.New("brand slug already in use")
	ErrInvalidSlug  = errors.New("brand slug must be lowercase letters, digits and hyphens")
	ErrInvalidInput = errors.New("invalid input")
	ErrInUse        = errors.New("brand still has templates, campaigns or leads")
)
