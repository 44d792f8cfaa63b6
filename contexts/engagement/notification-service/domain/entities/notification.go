package entities

import (
	"strings"
	"time"
)

// Notification categories mirror the shared event categories. Workflow
// notifications count toward the total bucket only.
const (
	CategoryMessage     = "message"
	CategoryApplication = "application"
	CategoryDeliverable = "deliverable"
	CategoryWorkflow    = "workflow"
)

type Notification struct {
	NotificationID string
	UserID         string
	Category       string
	Title          string
	Body           string
	EntityType     string
	EntityID       string
	IsRead         bool
	ReadAt         *time.Time
	CreatedAt      time.Time
}

// Counters aggregates a user's unread notifications into four buckets.
// Every unread notification counts toward Total; the category buckets
// split out messages, applications, and deliverables.
type Counters struct {
	Total        int64 `json:"total"`
	Messages     int64 `json:"messages"`
	Applications int64 `json:"applications"`
	Deliverables int64 `json:"deliverables"`
}

func (c *Counters) Add(category string, n int64) {
	c.Total += n
	switch category {
	case CategoryMessage:
		c.Messages += n
	case CategoryApplication:
		c.Applications += n
	case CategoryDeliverable:
		c.Deliverables += n
	}
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryMessage, CategoryApplication, CategoryDeliverable, CategoryWorkflow:
		return true
	}
	return false
}

func (n Notification) Validate() bool {
	if strings.TrimSpace(n.UserID) == "" {
		return false
	}
	if strings.TrimSpace(n.Title) == "" {
		return false
	}
	return ValidCategory(n.Category)
}
