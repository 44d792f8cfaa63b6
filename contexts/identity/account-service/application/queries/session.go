package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	application "helvetia/contexts/identity/account-service/application"
	"helvetia/contexts/identity/account-service/domain/entities"
	domainerrors "helvetia/contexts/identity/account-service/domain/errors"
	"helvetia/contexts/identity/account-service/ports"
)

const defaultLoadTimeout = 3 * time.Second

// LoadSessionUseCase serves the denormalized session cache-aside.
// Concurrent loads for the same user id collapse into one store round
// trip, and a fixed safety timeout bounds a stalled store so the caller
// never hangs.
type LoadSessionUseCase struct {
	Repo    ports.AccountRepository
	Cache   ports.SessionCache
	Clock   ports.Clock
	Group   *singleflight.Group
	Timeout time.Duration
	Logger  *slog.Logger
}

func (uc LoadSessionUseCase) Execute(ctx context.Context, userID string) (entities.Session, error) {
	logger := application.ResolveLogger(uc.Logger)
	trimmed := strings.TrimSpace(userID)
	if trimmed == "" {
		return entities.Session{}, domainerrors.ErrUserNotFound
	}

	cached, hit, err := uc.Cache.Get(ctx, trimmed)
	if err != nil {
		logger.Warn("session cache read failed",
			"event", "session_cache_read_failed",
			"module", "identity/account-service",
			"layer", "application",
			"user_id", trimmed,
			"error", err,
		)
	} else if hit {
		return cached, nil
	}

	timeout := uc.Timeout
	if timeout <= 0 {
		timeout = defaultLoadTimeout
	}

	result, err, _ := uc.Group.Do(trimmed, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		type outcome struct {
			session entities.Session
			err     error
		}
		done := make(chan outcome, 1)
		go func() {
			session, err := uc.load(loadCtx, trimmed)
			done <- outcome{session: session, err: err}
		}()

		select {
		case res := <-done:
			return res.session, res.err
		case <-loadCtx.Done():
			return entities.Session{}, domainerrors.ErrSessionLoadTimeout
		}
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrSessionLoadTimeout) {
			logger.Warn("session load timed out",
				"event", "session_load_timeout",
				"module", "identity/account-service",
				"layer", "application",
				"user_id", trimmed,
				"timeout", timeout,
			)
		}
		return entities.Session{}, err
	}

	session := result.(entities.Session)
	if cacheErr := uc.Cache.Set(ctx, trimmed, session); cacheErr != nil {
		logger.Warn("session cache write failed",
			"event", "session_cache_write_failed",
			"module", "identity/account-service",
			"layer", "application",
			"user_id", trimmed,
			"error", cacheErr,
		)
	}
	return session, nil
}

func (uc LoadSessionUseCase) load(ctx context.Context, userID string) (entities.Session, error) {
	user, err := uc.Repo.GetUser(ctx, userID)
	if err != nil {
		return entities.Session{}, err
	}

	session := entities.Session{
		UserID:   user.UserID,
		Email:    user.Email,
		Role:     user.Role,
		LoadedAt: uc.Clock.Now().UTC(),
	}
	switch user.Role {
	case entities.RoleBrand:
		profile, err := uc.Repo.GetBrandProfile(ctx, userID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrProfileNotFound) {
				return session, nil
			}
			return entities.Session{}, fmt.Errorf("load brand profile: %w", err)
		}
		session.BrandProfile = &profile
	case entities.RoleCreator:
		profile, err := uc.Repo.GetCreatorProfile(ctx, userID)
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
