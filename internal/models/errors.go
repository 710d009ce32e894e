package models

import "errors"

// Sentinel errors shared by the service, storage and HTTP layers.
var (
	ErrNotFound              = errors.New("not found")
	ErrNoSkinTypes           = errors.New("at least one skin type is required")
	ErrTooManyActives        = errors.New("too many key actives")
	ErrInvalidIngredientName = errors.New("invalid ingredient name")
	ErrStoreUnavailable      = errors.New("formulation store is not configured")
)
