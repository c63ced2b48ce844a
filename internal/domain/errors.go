package domain

import "errors"

var (
	// ErrFetchFailed is returned when a menu page cannot be retrieved
	ErrFetchFailed = errors.New("failed to fetch menu page")

	// ErrBadStatus is returned when a menu page responds with a non-2xx status
	ErrBadStatus = errors.New("menu page returned non-success status")

	// ErrRenderFailed is returned when headless rendering of a page fails or times out
	ErrRenderFailed = errors.New("failed to render menu page")

	// ErrEmptyPage is returned when a fetched page yields no usable text
	ErrEmptyPage = errors.New("menu page yielded no text")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNoRestaurants is returned when a check is run with an empty restaurant list
	ErrNoRestaurants = errors.New("no restaurants configured")
)
