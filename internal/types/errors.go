package types

import "errors"

var (
	// ErrInvalidRequest is returned when the caller's query is missing or malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned when the geocoder has no match for a location
	ErrNotFound = errors.New("location not found")

	// ErrUpstreamUnavailable covers network, timeout, status and decode failures
	// of the geocoding and forecast providers
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
