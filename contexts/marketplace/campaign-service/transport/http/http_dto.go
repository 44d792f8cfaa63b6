package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ProductName string  `json:"product_name"`
	ProductURL  string  `json:"product_url"`
	VideoFormat string  `json:"video_format"`
	ScriptType  string  `json:"script_type"`
	ScriptNotes string  `json:"script_notes"`
	UsageRights string  `json:"usage_rights"`
	BudgetCHF   float64 `json:"budget_chf"`
	Deadline    string  `json:"deadline"`
}

type ProposeCreatorsRequest struct {
	ProfileIDs []string `json:"profile_ids"`
}

type SelectCreatorRequest struct {
	CreatorID string `json:"creator_id"`
}

type RejectProfilesRequest struct {
	Reason string `json:"reason"`
}

type SubmitScriptRequest struct {
	Script string `json:"script"`
}

type ReviewScriptRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

type SubmitVideoRequest struct {
	MediaKey string `json:"media_key"`
}

type ReviewVideoRequest struct {
	Action string `json:"action"`
	Note   string `json:"note"`
}

type CancelCampaignRequest struct {
	Reason string `json:"reason"`
}

type CampaignDTO struct {
	CampaignID        string  `json:"campaign_id"`
	BrandID           string  `json:"brand_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	ProductName       string  `json:"product_name,omitempty"`
	ProductURL        string  `json:"product_url,omitempty"`
	VideoFormat       string  `json:"video_format"`
	ScriptType        string  `json:"script_type"`
	ScriptNotes       string  `json:"script_notes,omitempty"`
	UsageRights       string  `json:"usage_rights"`
	BudgetCHF         float64 `json:"budget_chf"`
	Deadline          string  `json:"deadline,omitempty"`
	Status            string  `json:"status"`
	SelectedCreatorID string  `json:"selected_creator_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	CompletedAt       string  `json:"completed_at,omitempty"`
	CancelledAt       string  `json:"cancelled_at,omitempty"`
}

type MissionStepDTO struct {
	StepID    string `json:"step_id"`
	StepType  string `json:"step_type"`
	Status    string `json:"status"`
	Payload   string `json:"payload,omitempty"`
	UpdatedAt string `json:"updated_at"`
}

type CreateCampaignResponse struct {
	Campaign CampaignDTO `json:"campaign"`
	Replayed bool        `json:"replayed"`
}

type ListCampaignsResponse struct {
	Items []CampaignDTO `json:"items"`
}

type GetCampaignResponse struct {
	Campaign CampaignDTO      `json:"campaign"`
	Steps    []MissionStepDTO `json:"steps"`
}
