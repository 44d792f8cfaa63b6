package errors

import "errors"

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidAccountInput = errors.New("invalid account input")
	ErrInvalidToken        = errors.New("invalid session token")
	ErrSessionLoadTimeout  = errors.New("session load timed out")
)
