// Package sentinel defines shared sentinel errors for the storage layer.
package sentinel

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned by stores when a uniqueness constraint would
	// be violated.
	ErrAlreadyExists = errors.New("already exists")
)
