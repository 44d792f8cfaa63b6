package errors

import "errors"

var (
	ErrCampaignNotFound       = errors.New("campaign not found")
	ErrInvalidCampaignInput   = errors.New("invalid campaign input")
	ErrInvalidStateTransition = errors.New("invalid campaign state transition")
	ErrStepOrderViolation     = errors.New("mission step predecessor not complete")
	ErrStepNotFound           = errors.New("mission step not found")
	ErrNotAuthorized          = errors.New("actor not authorized for this action")
	ErrContractNotSigned      = errors.New("contract not signed by creator")
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")
	ErrIdempotencyKeyConflict = errors.New("idempotency key reused with different request")
)
