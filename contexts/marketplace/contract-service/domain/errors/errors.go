package errors

import "errors"

var (
	ErrContractNotFound     = errors.New("contract not found")
	ErrDuplicateContract    = errors.New("contract already exists for this campaign and creator")
	ErrInvalidContractInput = errors.New("invalid contract input")
	ErrInvalidContractState = errors.New("invalid contract state for this action")
	ErrNotAuthorized        = errors.New("actor is not allowed to perform this action")
)
