package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateRecord is returned when a record with the same ID already exists.
	ErrDuplicateRecord = errors.New("duplicate record")
)
