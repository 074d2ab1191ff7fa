// Package content provides the use cases for managing content items.
// It validates ids and inputs, maps repository absence to sentinel errors,
// and records a span and an operation metric for every call.
package content

import "errors"

// Sentinel errors for content use case operations.
var (
	// ErrContentNotFound indicates that the requested content item does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrInvalidContentID indicates that the id is not a positive integer.
	ErrInvalidContentID = errors.New("invalid content id")

	// ErrNoUpdatableFields indicates an update carrying none of title, content or tags.
	ErrNoUpdatableFields = errors.New("no updatable fields provided")
)
