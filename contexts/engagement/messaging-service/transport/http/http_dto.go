package http

type StartConversationRequest struct {
	CampaignID string `json:"campaign_id"`
	BrandID    string `json:"brand_id"`
	CreatorID  string `json:"creator_id"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

type ConversationDTO struct {
	ConversationID string `json:"conversation_id"`
	CampaignID     string `json:"campaign_id"`
	BrandID        string `json:"brand_id"`
	CreatorID      string `json:"creator_id"`
	LastMessageAt  string `json:"last_message_at"`
	UnreadCount    int64  `json:"unread_count"`
}

type MessageDTO struct {
	MessageID      string `json:"message_id"`
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	Content        string `json:"content"`
	ReadAt         string `json:"read_at,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type StartConversationResponse struct {
	Conversation ConversationDTO `json:"conversation"`
}

type SendMessageResponse struct {
	Message MessageDTO `json:"message"`
}

type ListConversationsResponse struct {
	Items []ConversationDTO `json:"items"`
}

type ListMessagesResponse struct {
	Items []MessageDTO `json:"items"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
