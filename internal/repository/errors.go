package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an append races with another write to the same project.
var ErrConflict = errors.New("conflict")
