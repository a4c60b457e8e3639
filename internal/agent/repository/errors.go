package repository

import "errors"

// Repository errors.
var (
	ErrBusinessNotFound = errors.New("business not found")
)
