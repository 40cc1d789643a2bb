package store

import "errors"

// ErrNotFound is returned when a requested row does not exist or belongs to a
// different tenant.
var ErrNotFound = errors.New("record not found")
