package ports

import (
	"context"
	"time"

	"helvetia/contexts/identity/account-service/domain/entities"
)

type AccountRepository interface {
	// CreateUser persists the user and its role profile atomically.
	// At most one of brand/creator is non-nil.
	CreateUser(ctx context.Context, user entities.User, brand *entities.BrandProfile, creator *entities.CreatorProfile) error
	GetUser(ctx context.Context, userID string) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	GetBrandProfile(ctx context.Context, userID string) (entities.BrandProfile, error)
	GetCreatorProfile(ctx context.Context, userID string) (entities.CreatorProfile, error)
}

// SessionCache holds denormalized sessions keyed by user id so a page
// reload does not refetch the profile.
type SessionCache interface {
	Get(ctx context.Context, userID string) (entities.Session, bool, error)
	Set(ctx context.Context, userID string, session entities.Session) error
	Delete(ctx context.Context, userID string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type TokenClaims struct {
	UserID string
	Role   string
}

type TokenIssuer interface {
	Issue(userID string, role string, now time.Time) (string, time.Time, error)
	Parse(token string) (TokenClaims, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
