package commands

import (
	"time"

	"helvetia/contexts/marketplace/campaign-service/ports"
	"helvetia/internal/shared/events"
)

const sourceService = "campaign-service"

func notificationEnvelope(
	eventID string,
	campaignID string,
	occurredAt time.Time,
	intent events.NotificationIntent,
) (ports.EventEnvelope, error) {
	return events.NewEnvelope(
		eventID,
		events.TypeNotificationRequested,
		sourceService,
		campaignID,
		occurredAt,
		intent,
	)
}

func campaignEnvelope(
	eventID string,
	eventType string,
	campaignID string,
	occurredAt time.Time,
	payload any,
) (ports.EventEnvelope, error) {
	return events.NewEnvelope(
		eventID,
		eventType,
		sourceService,
		campaignID,
		occurredAt,
		payload,
	)
}
