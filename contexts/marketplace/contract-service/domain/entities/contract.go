package entities

import (
	"fmt"
	"strings"
	"time"
)

type ContractStatus string

const (
	ContractStatusPendingSignature ContractStatus = "pending_signature"
	ContractStatusActive           ContractStatus = "active"
	ContractStatusCancelled        ContractStatus = "cancelled"
)

// Contract binds one brand and one creator to a campaign. It is issued
// automatically when the brand selects the creator and becomes active
// once the creator signs.
type Contract struct {
	ContractID  string
	CampaignID  string
	BrandID     string
	CreatorID   string
	Terms       string
	Status      ContractStatus
	IssuedAt    time.Time
	SignedAt    *time.Time
	CancelledAt *time.Time
}

func (c Contract) IsTerminal() bool {
	return c.Status == ContractStatusCancelled
}

func (c Contract) ValidateBasics() bool {
	return strings.TrimSpace(c.CampaignID) != "" &&
		strings.TrimSpace(c.BrandID) != "" &&
		strings.TrimSpace(c.CreatorID) != "" &&
		strings.TrimSpace(c.Terms) != ""
}

// StandardTerms renders the default contract text for a selection.
func StandardTerms(title string, budgetCHF float64, usageRights string) string {
	return fmt.Sprintf(
		"Campaign: %s\nCompensation: CHF %.2f\nUsage rights: %s\nDeliverable: one video per the campaign brief.",
		strings.TrimSpace(title), budgetCHF, strings.TrimSpace(usageRights),
	)
}
