package store

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUnsupportedURL    = errors.New("unsupported database url")
	ErrInvalidUser       = errors.New("invalid user")
)
