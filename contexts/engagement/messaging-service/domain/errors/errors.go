package errors

import "errors"

var (
	ErrConversationNotFound  = errors.New("conversation not found")
	ErrDuplicateConversation = errors.New("conversation already exists for this campaign pair")
	ErrInvalidMessageInput   = errors.New("invalid message input")
	ErrNotAuthorized         = errors.New("actor is not a participant of this conversation")
)
