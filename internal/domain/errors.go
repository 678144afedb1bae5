package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrDataIntegrity    = errors.New("data integrity violation")
	ErrInvalidQuery     = errors.New("invalid search query")
)
