package entities

import (
	"strings"
	"time"
)

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

const (
	minPitchLength = 20
	maxPitchLength = 1500
	maxRateCHF     = 50_000
)

// Application is one creator's pitch for a campaign. A creator gets at
// most one application per campaign.
type Application struct {
	ApplicationID   string
	CampaignID      string
	CreatorID       string
	Pitch           string
	ProposedRateCHF float64
	Status          ApplicationStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Application) IsTerminal() bool {
	return a.Status == ApplicationStatusWithdrawn ||
		a.Status == ApplicationStatusAccepted ||
		a.Status == ApplicationStatusRejected
}

func (a Application) ValidateBasics() bool {
	pitch := strings.TrimSpace(a.Pitch)
	if len(pitch) < minPitchLength || len(pitch) > maxPitchLength {
		return false
	}
	if a.ProposedRateCHF < 0 || a.ProposedRateCHF > maxRateCHF {
		return false
	}
	return strings.TrimSpace(a.CampaignID) != "" && strings.TrimSpace(a.CreatorID) != ""
}
