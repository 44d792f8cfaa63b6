package commands

import (
	"time"

	"helvetia/contexts/marketplace/application-service/ports"
	"helvetia/internal/shared/events"
)

const sourceService = "application-service"

const (
	RoleBrand   = "brand"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

func notificationEnvelope(
	eventID string,
	campaignID string,
	occurredAt time.Time,
	intent events.NotificationIntent,
) (ports.EventEnvelope, error) {
	return events.NewEnvelope(eventID, events.TypeNotificationRequested, sourceService, campaignID, occurredAt, intent)
}
