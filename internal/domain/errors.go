package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidIdentifier = errors.New("invalid rodne cislo")
	ErrUnknownColumn     = errors.New("unknown column")
)
