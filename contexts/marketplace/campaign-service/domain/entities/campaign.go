package entities

import (
	"strings"
	"time"
)

type CampaignStatus string
type VideoFormat string
type ScriptType string
type UsageRights string

const (
	CampaignStatusDraft      CampaignStatus = "draft"
	CampaignStatusOpen       CampaignStatus = "open"
	CampaignStatusInProgress CampaignStatus = "in_progress"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusCancelled  CampaignStatus = "cancelled"

	VideoFormatVertical  VideoFormat = "vertical_9x16"
	VideoFormatSquare    VideoFormat = "square_1x1"
	VideoFormatLandscape VideoFormat = "landscape_16x9"

	ScriptTypeBrandProvided ScriptType = "brand_provided"
	ScriptTypeCreatorLed    ScriptType = "creator_led"

	UsageRightsOrganic    UsageRights = "organic"
	UsageRightsPaidAds    UsageRights = "paid_ads"
	UsageRightsFullBuyout UsageRights = "full_buyout"
)

// Campaign is a brand's UGC production request, the root entity the
// mission workflow revolves around. BrandID and CreatedAt never change
// after creation; SelectedCreatorID stays empty until the status has
// progressed past open.
type Campaign struct {
	CampaignID        string
	BrandID           string
	Title             string
	Description       string
	ProductName       string
	ProductURL        string
	VideoFormat       VideoFormat
	ScriptType        ScriptType
	ScriptNotes       string
	UsageRights       UsageRights
	BudgetCHF         float64
	DeadlineAt        *time.Time
	Status            CampaignStatus
	SelectedCreatorID string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CompletedAt       *time.Time
	CancelledAt       *time.Time
}

func (c Campaign) IsTerminal() bool {
	return c.Status == CampaignStatusCompleted || c.Status == CampaignStatusCancelled
}

func (c Campaign) ValidateBasics(now time.Time) bool {
	title := strings.TrimSpace(c.Title)
	description := strings.TrimSpace(c.Description)

	return title != "" &&
		len(title) >= 3 &&
		len(title) <= 120 &&
		description != "" &&
		len(description) >= 10 &&
		len(description) <= 3000 &&
		c.BudgetCHF >= 50.0 &&
		c.BudgetCHF <= 50_000.0 &&
		IsSupportedVideoFormat(c.VideoFormat) &&
		IsSupportedScriptType(c.ScriptType) &&
		IsSupportedUsageRights(c.UsageRights) &&
		DeadlineInFuture(c.DeadlineAt, now)
}

func IsSupportedVideoFormat(value VideoFormat) bool {
	switch value {
	case VideoFormatVertical, VideoFormatSquare, VideoFormatLandscape:
		return true
	default:
		return false
	}
}

func IsSupportedScriptType(value ScriptType) bool {
	switch value {
	case ScriptTypeBrandProvided, ScriptTypeCreatorLed:
		return true
	default:
		return false
	}
}

func IsSupportedUsageRights(value UsageRights) bool {
	switch value {
	case UsageRightsOrganic, UsageRightsPaidAds, UsageRightsFullBuyout:
		return true
	default:
		return false
	}
}

func DeadlineInFuture(deadline *time.Time, now time.Time) bool {
	if deadline == nil {
		return true
	}
	return deadline.UTC().After(now.UTC())
}
