package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "helvetia/contexts/identity/account-service/application"
	"helvetia/contexts/identity/account-service/domain/entities"
	domainerrors "helvetia/contexts/identity/account-service/domain/errors"
	"helvetia/contexts/identity/account-service/ports"
)

type SignUpCommand struct {
	Email    string
	Password string
	Role     string

	// Brand profile fields, used when Role is brand.
	CompanyName string
	Website     string
	Industry    string

	// Creator profile fields, used when Role is creator.
	DisplayName  string
	Bio          string
	Niches       []string
	Languages    []string
	RateCHF      float64
	PortfolioURL string
}

type AuthResult struct {
	Session   entities.Session
	Token     string
	ExpiresAt string
}

// SignUpUseCase registers a user with its role profile, issues a session
// token, and warms the session cache.
type SignUpUseCase struct {
	Repo        ports.AccountRepository
	Cache       ports.SessionCache
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenIssuer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SignUpUseCase) Execute(ctx context.Context, cmd SignUpCommand) (AuthResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := entities.NormalizeEmail(cmd.Email)
	if !entities.ValidEmail(email) || !entities.ValidPassword(cmd.Password) {
		return AuthResult{}, domainerrors.ErrInvalidAccountInput
	}
	if cmd.Role != entities.RoleBrand && cmd.Role != entities.RoleCreator {
		return AuthResult{}, domainerrors.ErrInvalidAccountInput
	}

	hash, err := uc.Hasher.Hash(cmd.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate user id: %w", err)
	}

	now := uc.Clock.Now().UTC()
	user := entities.User{
		UserID:       userID,
		Email:        email,
		PasswordHash: hash,
		Role:         cmd.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var brand *entities.BrandProfile
	var creator *entities.CreatorProfile
	switch cmd.Role {
	case entities.RoleBrand:
		if strings.TrimSpace(cmd.CompanyName) == "" {
			return AuthResult{}, domainerrors.ErrInvalidAccountInput
		}
		brand = &entities.BrandProfile{
			UserID:      userID,
			CompanyName: strings.TrimSpace(cmd.CompanyName),
			Website:     strings.TrimSpace(cmd.Website),
			Industry:    strings.TrimSpace(cmd.Industry),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	case entities.RoleCreator:
		if strings.TrimSpace(cmd.DisplayName) == "" {
			return AuthResult{}, domainerrors.ErrInvalidAccountInput
		}
		creator = &entities.CreatorProfile{
			UserID:       userID,
			DisplayName:  strings.TrimSpace(cmd.DisplayName),
			Bio:          strings.TrimSpace(cmd.Bio),
			Niches:       cmd.Niches,
			Languages:    cmd.Languages,
			RateCHF:      cmd.RateCHF,
			PortfolioURL: strings.TrimSpace(cmd.PortfolioURL),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
	}

	if err := uc.Repo.CreateUser(ctx, user, brand, creator); err != nil {
		if errors.Is(err, domainerrors.ErrEmailTaken) {
			return AuthResult{}, domainerrors.ErrEmailTaken
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	session := entities.Session{
		UserID:         userID,
		Email:          email,
		Role:           cmd.Role,
		BrandProfile:   brand,
		CreatorProfile: creator,
		LoadedAt:       now,
	}
	cacheSession(ctx, uc.Cache, session, logger)

	token, expiresAt, err := uc.Tokens.Issue(userID, cmd.Role, now)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	logger.Info("user signed up",
		"event", "user_signed_up",
		"module", "identity/account-service",
		"layer", "application",
		"user_id", userID,
		"role", cmd.Role,
	)
	return AuthResult{Session: session, Token: token, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)}, nil
}

type SignInCommand struct {
	Email    string
	Password string
}

// SignInUseCase checks credentials, eagerly loads the role profile, and
// warms the session cache.
type SignInUseCase struct {
	Repo   ports.AccountRepository
	Cache  ports.SessionCache
	Hasher ports.PasswordHasher
	Tokens ports.TokenIssuer
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc SignInUseCase) Execute(ctx context.Context, cmd SignInCommand) (AuthResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	email := entities.NormalizeEmail(cmd.Email)
	user, err := uc.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return AuthResult{}, domainerrors.ErrInvalidCredentials
		}
		return AuthResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := uc.Hasher.Compare(user.PasswordHash, cmd.Password); err != nil {
		return AuthResult{}, domainerrors.ErrInvalidCredentials
	}

	now := uc.Clock.Now().UTC()
	session, err := buildSession(ctx, uc.Repo, user, now)
	if err != nil {
		return AuthResult{}, err
	}
	cacheSession(ctx, uc.Cache, session, logger)

	token, expiresAt, err := uc.Tokens.Issue(user.UserID, user.Role, now)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	logger.Info("user signed in",
		"event", "user_signed_in",
		"module", "identity/account-service",
		"layer", "application",
		"user_id", user.UserID,
		"role", user.Role,
	)
	return AuthResult{Session: session, Token: token, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)}, nil
}

type SignOutUseCase struct {
	Cache  ports.SessionCache
	Logger *slog.Logger
}

func (uc SignOutUseCase) Execute(ctx context.Context, userID string) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Cache.Delete(ctx, strings.TrimSpace(userID)); err != nil {
		return fmt.Errorf("drop session: %w", err)
	}
	logger.Info("user signed out",
		"event", "user_signed_out",
		"module", "identity/account-service",
		"layer", "application",
		"user_id", userID,
	)
	return nil
}

// buildSession loads the role-specific profile, never both.
func buildSession(ctx context.Context, repo ports.AccountRepository, user entities.User, now time.Time) (entities.Session, error) {
	session := entities.Session{
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     user.Role,
		LoadedAt: now,
	}
	switch user.Role {
	case entities.RoleBrand:
		profile, err := repo.GetBrandProfile(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrProfileNotFound) {
				return session, nil
			}
			return entities.Session{}, fmt.Errorf("load brand profile: %w", err)
		}
		session.BrandProfile = &profile
	case entities.RoleCreator:
		profile, err := repo.GetCreatorProfile(ctx, user.UserID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrProfileNotFound) {
				return session, nil
			}
			return entities.Session{}, fmt.Errorf("load creator profile: %w", err)
		}
		session.CreatorProfile = &profile
	}
	return session, nil
}

func cacheSession(ctx context.Context, cache ports.SessionCache, session entities.Session, logger *slog.Logger) {
	if err := cache.Set(ctx, session.UserID, session); err != nil {
		logger.Warn("session cache write failed",
			"event", "session_cache_write_failed",
			"module", "identity/account-service",
			"layer", "application",
			"user_id", session.UserID,
			"error", err,
		)
	}
}
