package errors

import "errors"

var (
	ErrApplicationNotFound     = errors.New("application not found")
	ErrCampaignNotFound        = errors.New("campaign not found")
	ErrDuplicateApplication    = errors.New("creator already applied to this campaign")
	ErrInvalidApplicationInput = errors.New("invalid application input")
	ErrCampaignNotOpen         = errors.New("campaign is not open for applications")
	ErrInvalidStatusChange     = errors.New("invalid application status change")
	ErrNotAuthorized           = errors.New("actor is not allowed to perform this action")
)
