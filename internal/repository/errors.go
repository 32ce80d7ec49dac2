package repository

import "errors"

// ErrNotFound is returned by every store implementation when the requested
// row does not exist. Services translate it into their own taxonomy.
var ErrNotFound = errors.New("record not found")
