package usecases

import "errors"

var (
	// ErrTextTooLarge is returned when an input text exceeds the configured limit.
	ErrTextTooLarge = errors.New("text exceeds maximum size")

	// ErrSampleNotFound is returned for an unknown sample ID.
	ErrSampleNotFound = errors.New("sample not found")
)
