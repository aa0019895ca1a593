package domain

import "errors"

var (
	// ErrNotFound means the targeted record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrStorageUnavailable means the persistence layer could not be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
