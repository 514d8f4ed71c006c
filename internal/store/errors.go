package store

import "errors"

var (
	ErrNotFound           = errors.New("store: not found")
	ErrEmailTaken         = errors.New("store: email already registered")
	ErrInvalidEmail       = errors.New("store: invalid email address")
	ErrPasswordTooShort   = errors.New("store: password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("store: invalid credentials")
	ErrEmptyText          = errors.New("store: todo text is required")
)
