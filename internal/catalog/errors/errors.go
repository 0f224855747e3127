package errors

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	ErrInvalidID = errors.New("invalid ID format")

	ErrDuplicateSlug = errors.New("slug already exists")
)
