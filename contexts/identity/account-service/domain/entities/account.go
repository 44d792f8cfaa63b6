package entities

import (
	"strings"
	"time"
)

const (
	RoleBrand   = "brand"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

const minPasswordLength = 8

type User struct {
	UserID       string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BrandProfile struct {
	UserID      string
	CompanyName string
	Website     string
	Industry    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreatorProfile struct {
	UserID       string
	DisplayName  string
	Bio          string
	Niches       []string
	Languages    []string
	RateCHF      float64
	PortfolioURL string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the denormalized identity handed to callers after sign-in
// or a session load. Exactly one of the profile pointers is set,
// matching the user's role; admins carry neither.
type Session struct {
	UserID         string
	Email          string
	Role           string
	BrandProfile   *BrandProfile
	CreatorProfile *CreatorProfile
	LoadedAt       time.Time
}

func ValidRole(role string) bool {
	switch role {
	case RoleBrand, RoleCreator, RoleAdmin:
		return true
	}
	return false
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func ValidPassword(password string) bool {
	return len(password) >= minPasswordLength
}
