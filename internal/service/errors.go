package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNotFound           = errors.New("not found")
	ErrParentNotFound     = errors.New("parent comment not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPersistence        = errors.New("persistence failure")
)

// storageError keeps domain sentinels intact and marks everything else as a
// persistence failure.
func storageError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrParentNotFound),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidRequest):
		return err
	default:
		return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
}
