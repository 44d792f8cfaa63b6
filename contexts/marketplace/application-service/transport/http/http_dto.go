package http

type ApplyRequest struct {
	CampaignID      string  `json:"campaign_id"`
	Pitch           string  `json:"pitch"`
	ProposedRateCHF float64 `json:"proposed_rate_chf"`
}

type DecideRequest struct {
	Action string `json:"action"`
}

type ApplicationDTO struct {
	ApplicationID   string  `json:"application_id"`
	CampaignID      string  `json:"campaign_id"`
	CreatorID       string  `json:"creator_id"`
	Pitch           string  `json:"pitch"`
	ProposedRateCHF float64 `json:"proposed_rate_chf"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ApplyResponse struct {
	Application ApplicationDTO `json:"application"`
}

type ListApplicationsResponse struct {
	Items []ApplicationDTO `json:"items"`
}
