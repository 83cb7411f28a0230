package service

import "errors"

// Client errors map to 400 responses; upstream and store failures to 5xx.
var (
	ErrInvalidQuery    = errors.New("invalid query")
	ErrNotFound        = errors.New("not found")
	ErrInvalidRange    = errors.New("invalid range")
	ErrUpstreamFailure = errors.New("upstream failure")
	ErrStoreFailure    = errors.New("store failure")
)
