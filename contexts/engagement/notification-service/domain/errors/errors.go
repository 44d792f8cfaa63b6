package errors

import "errors"

var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrInvalidNotificationInput = errors.New("invalid notification input")
	ErrNotAuthorized            = errors.New("not authorized for this notification")
)
