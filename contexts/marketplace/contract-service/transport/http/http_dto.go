package http

type ContractDTO struct {
	ContractID  string `json:"contract_id"`
	CampaignID  string `json:"campaign_id"`
	BrandID     string `json:"brand_id"`
	CreatorID   string `json:"creator_id"`
	Terms       string `json:"terms"`
	Status      string `json:"status"`
	IssuedAt    string `json:"issued_at"`
	SignedAt    string `json:"signed_at,omitempty"`
	CancelledAt string `json:"cancelled_at,omitempty"`
}

type GetContractResponse struct {
	Contract ContractDTO `json:"contract"`
}

type ListContractsResponse struct {
	Items []ContractDTO `json:"items"`
}
