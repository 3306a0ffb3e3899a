// internal/service/errors.go
package service

import "errors"

var (
	// ErrNotFound covers both genuinely missing resources and resources the
	// caller does not own; ownership violations must not be distinguishable.
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicateResource  = errors.New("resource already exists")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
