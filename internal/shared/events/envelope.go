package events

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	contractsv1 "helvetia/contracts/gen/events/v1"
)

// Event types flowing through the outbox and the bus.
// notification.requested carries a NotificationIntent payload and is
// consumed by the notification service.
const (
	TypeNotificationRequested = "notification.requested"
	TypeContractRequested     = "contract.requested"
	TypeContractSigned        = "contract.signed"
	TypeCampaignCancelled     = "campaign.cancelled"
	TypeCampaignCompleted     = "campaign.completed"
)

// Notification categories, shared between producers and the counter buckets.
const (
	CategoryMessage     = "message"
	CategoryApplication = "application"
	CategoryDeliverable = "deliverable"
	CategoryWorkflow    = "workflow"
)

// NotificationIntent is the payload of a notification.requested event.
type NotificationIntent struct {
	UserID     string `json:"user_id"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
}

// ContractRequest is the payload of a contract.requested event.
type ContractRequest struct {
	CampaignID  string  `json:"campaign_id"`
	BrandID     string  `json:"brand_id"`
	CreatorID   string  `json:"creator_id"`
	Title       string  `json:"title"`
	BudgetCHF   float64 `json:"budget_chf"`
	UsageRights string  `json:"usage_rights"`
}

// PayloadHash fingerprints an event payload for consumer-side dedup.
func PayloadHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewEnvelope builds a canonical envelope with a serialized payload.
func NewEnvelope(
	eventID string,
	eventType string,
	sourceService string,
	partitionKey string,
	occurredAt time.Time,
	payload any,
) (contractsv1.Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return contractsv1.Envelope{}, err
	}
	return contractsv1.Envelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    sourceService,
		SchemaVersion:    1,
		PartitionKeyPath: "partition_key",
		PartitionKey:     partitionKey,
		Data:             data,
	}, nil
}
