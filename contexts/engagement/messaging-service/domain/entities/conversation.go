package entities

import (
	"strings"
	"time"
)

const maxMessageLength = 2000

// Conversation is the single thread between a brand and a creator for
// one campaign.
type Conversation struct {
	ConversationID string
	CampaignID     string
	BrandID        string
	CreatorID      string
	LastMessageAt  time.Time
	CreatedAt      time.Time
}

func (c Conversation) HasParticipant(userID string) bool {
	trimmed := strings.TrimSpace(userID)
	return trimmed != "" && (c.BrandID == trimmed || c.CreatorID == trimmed)
}

// OtherParticipant returns the counterpart of the given participant.
func (c Conversation) OtherParticipant(userID string) string {
	if c.BrandID == strings.TrimSpace(userID) {
		return c.CreatorID
	}
	return c.BrandID
}

type Message struct {
	MessageID      string
	ConversationID string
	SenderID       string
	Content        string
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// ValidMessageContent rejects empty and oversized bodies before any
// write happens.
func ValidMessageContent(content string) bool {
	trimmed := strings.TrimSpace(content)
	return trimmed != "" && len(trimmed) <= maxMessageLength
}
