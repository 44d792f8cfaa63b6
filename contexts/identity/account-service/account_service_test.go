package accountservice

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/singleflight"

	"helvetia/contexts/identity/account-service/adapters/memory"
	redisadapter "helvetia/contexts/identity/account-service/adapters/redis"
	"helvetia/contexts/identity/account-service/application/queries"
	"helvetia/contexts/identity/account-service/domain/entities"
	domainerrors "helvetia/contexts/identity/account-service/domain/errors"
	httptransport "helvetia/contexts/identity/account-service/transport/http"
)

func brandSignUp(email string) httptransport.SignUpRequest {
	return httptransport.SignUpRequest{
		Email:       email,
		Password:    "correct-horse",
		Role:        entities.RoleBrand,
		CompanyName: "Alpenblick AG",
		Industry:    "outdoor",
	}
}

func TestSignUpIssuesTokenAndRoleProfile(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	resp, err := module.Handler.SignUpHandler(ctx, brandSignUp("brand@example.ch"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, entities.RoleBrand, resp.Session.Role)
	require.NotNil(t, resp.Session.BrandProfile)
	require.Nil(t, resp.Session.CreatorProfile)

	claims, err := module.Tokens.Parse(resp.Token)
	require.NoError(t, err)
	require.Equal(t, resp.Session.UserID, claims.UserID)
	require.Equal(t, entities.RoleBrand, claims.Role)

	_, err = module.Handler.SignUpHandler(ctx, brandSignUp("Brand@Example.ch"))
	require.ErrorIs(t, err, domainerrors.ErrEmailTaken)

	short := brandSignUp("other@example.ch")
	short.Password = "short"
	_, err = module.Handler.SignUpHandler(ctx, short)
	require.ErrorIs(t, err, domainerrors.ErrInvalidAccountInput)

	admin := brandSignUp("admin@example.ch")
	admin.Role = entities.RoleAdmin
	_, err = module.Handler.SignUpHandler(ctx, admin)
	require.ErrorIs(t, err, domainerrors.ErrInvalidAccountInput)
}

func TestSignInLoadsCreatorProfileOnly(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	_, err := module.Handler.SignUpHandler(ctx, httptransport.SignUpRequest{
		Email:       "creator@example.ch",
		Password:    "correct-horse",
		Role:        entities.RoleCreator,
		DisplayName: "Lina",
		Niches:      []string{"food", "travel"},
		Languages:   []string{"de", "fr"},
		RateCHF:     350,
	})
	require.NoError(t, err)

	resp, err := module.Handler.SignInHandler(ctx, httptransport.SignInRequest{
		Email:    "creator@example.ch",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Session.CreatorProfile)
	require.Nil(t, resp.Session.BrandProfile)
	require.Equal(t, []string{"food", "travel"}, resp.Session.CreatorProfile.Niches)

	_, err = module.Handler.SignInHandler(ctx, httptransport.SignInRequest{
		Email:    "creator@example.ch",
		Password: "wrong-password",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = module.Handler.SignInHandler(ctx, httptransport.SignInRequest{
		Email:    "nobody@example.ch",
		Password: "correct-horse",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestSignOutDropsCachedSessionAndLoadRewarmsIt(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	resp, err := module.Handler.SignUpHandler(ctx, brandSignUp("brand@example.ch"))
	require.NoError(t, err)
	userID := resp.Session.UserID

	_, hit, err := module.Sessions.Get(ctx, userID)
	require.NoError(t, err)
	require.True(t, hit, "sign-up should warm the session cache")

	require.NoError(t, module.Handler.SignOutHandler(ctx, userID))
	_, hit, err = module.Sessions.Get(ctx, userID)
	require.NoError(t, err)
	require.False(t, hit)

	loaded, err := module.Handler.GetSessionHandler(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, userID, loaded.Session.UserID)
	require.NotNil(t, loaded.Session.BrandProfile)

	_, hit, err = module.Sessions.Get(ctx, userID)
	require.NoError(t, err)
	require.True(t, hit, "session load should rewarm the cache")
}

// stalledRepo blocks every profile lookup until released, ignoring the
// caller's context, like a hung network connection would.
type stalledRepo struct {
	calls   atomic.Int32
	release chan struct{}
}

func (r *stalledRepo) CreateUser(context.Context, entities.User, *entities.BrandProfile, *entities.CreatorProfile) error {
	return nil
}

func (r *stalledRepo) GetUser(context.Context, string) (entities.User, error) {
	r.calls.Add(1)
	<-r.release
	return entities.User{UserID: "u1", Email: "u1@example.ch", Role: entities.RoleBrand}, nil
}

func (r *stalledRepo) GetUserByEmail(context.Context, string) (entities.User, error) {
	return entities.User{}, domainerrors.ErrUserNotFound
}

func (r *stalledRepo) GetBrandProfile(context.Context, string) (entities.BrandProfile, error) {
	return entities.BrandProfile{}, domainerrors.ErrProfileNotFound
}

func (r *stalledRepo) GetCreatorProfile(context.Context, string) (entities.CreatorProfile, error) {
	return entities.CreatorProfile{}, domainerrors.ErrProfileNotFound
}

func TestSessionLoadTimesOutOnStalledStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &stalledRepo{release: make(chan struct{})}
	t.Cleanup(func() { close(repo.release) })

	uc := queries.LoadSessionUseCase{
		Repo:    repo,
		Cache:   redisadapter.NewSessionCache(client, time.Hour),
		Clock:   memory.NewStore(),
		Group:   new(singleflight.Group),
		Timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	_, err := uc.Execute(context.Background(), "u1")
	require.ErrorIs(t, err, domainerrors.ErrSessionLoadTimeout)
	require.Less(t, time.Since(start), time.Second, "timeout must bound a stalled load")
}

func TestOverlappingSessionLoadsCollapse(t *testing.T) {
	repo := &stalledRepo{release: make(chan struct{})}

	uc := queries.LoadSessionUseCase{
		Repo:    repo,
		Cache:   memory.NewSessionCache(),
		Clock:   memory.NewStore(),
		Group:   new(singleflight.Group),
		Timeout: time.Second,
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), "u1")
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	require.Equal(t, int32(1), repo.calls.Load(), "concurrent loads for one user should hit the store once")
}
