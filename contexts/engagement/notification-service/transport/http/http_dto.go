package http

type NotificationDTO struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Category       string `json:"category"`
	Title          string `json:"title"`
	Body           string `json:"body,omitempty"`
	EntityType     string `json:"entity_type,omitempty"`
	EntityID       string `json:"entity_id,omitempty"`
	IsRead         bool   `json:"is_read"`
	ReadAt         string `json:"read_at,omitempty"`
	CreatedAt      string `json:"created_at"`
}

type ListNotificationsResponse struct {
	Items []NotificationDTO `json:"items"`
}

type CountersResponse struct {
	Total        int64 `json:"total"`
	Messages     int64 `json:"messages"`
	Applications int64 `json:"applications"`
	Deliverables int64 `json:"deliverables"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
