package errors

import "errors"

var (
	ErrInvalidClipInput = errors.New("invalid clip input")
	ErrInvalidTrimRange = errors.New("invalid trim range")
	ErrEngineFailure    = errors.New("media engine failure")
)
