package http

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	CompanyName string `json:"company_name,omitempty"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`

	DisplayName  string   `json:"display_name,omitempty"`
	Bio          string   `json:"bio,omitempty"`
	Niches       []string `json:"niches,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	RateCHF      float64  `json:"rate_chf,omitempty"`
	PortfolioURL string   `json:"portfolio_url,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BrandProfileDTO struct {
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`
	Industry    string `json:"industry,omitempty"`
}

type CreatorProfileDTO struct {
	DisplayName  string   `json:"display_name"`
	Bio          string   `json:"bio,omitempty"`
	Niches       []string `json:"niches,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	RateCHF      float64  `json:"rate_chf"`
	PortfolioURL string   `json:"portfolio_url,omitempty"`
}

type SessionDTO struct {
	UserID         string             `json:"user_id"`
	Email          string             `json:"email"`
	Role           string             `json:"role"`
	BrandProfile   *BrandProfileDTO   `json:"brand_profile,omitempty"`
	CreatorProfile *CreatorProfileDTO `json:"creator_profile,omitempty"`
}

type AuthResponse struct {
	Token     string     `json:"token"`
	ExpiresAt string     `json:"expires_at"`
	Session   SessionDTO `json:"session"`
}

type SessionResponse struct {
	Session SessionDTO `json:"session"`
}
