package service

import "errors"

var (
	// ErrInvalidCategory is returned when a category name is empty or does not match CategoryPattern
	ErrInvalidCategory = errors.New("invalid category")

	// ErrCategoryNotFound is returned by CategoryStore lookups for unknown names
	ErrCategoryNotFound = errors.New("category not found")

	// ErrPersistencePath is returned for model file paths that are not absolute
	ErrPersistencePath = errors.New("invalid model path")

	// ErrUnsupportedModelVersion is returned when a persisted model has an unknown schema version
	ErrUnsupportedModelVersion = errors.New("unsupported model version")

	// ErrInvalidModelState is returned when a persisted model is malformed or inconsistent
	ErrInvalidModelState = errors.New("invalid model state")

	// ErrPayloadTooLarge is returned by the request layer when a body exceeds the configured limit
	ErrPayloadTooLarge = errors.New("payload too large")
)
