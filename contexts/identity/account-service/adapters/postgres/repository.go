package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"helvetia/contexts/identity/account-service/domain/entities"
	domainerrors "helvetia/contexts/identity/account-service/domain/errors"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateUser(
	ctx context.Context,
	user entities.User,
	brand *entities.BrandProfile,
	creator *entities.CreatorProfile,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := userModelFromEntity(user)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrEmailTaken
			}
			return err
		}
		if brand != nil {
			profile := brandModelFromEntity(*brand)
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		if creator != nil {
			profile := creatorModelFromEntity(*creator)
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", entities.NormalizeEmail(email)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetBrandProfile(ctx context.Context, userID string) (entities.BrandProfile, error) {
	var row brandProfileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.BrandProfile{}, domainerrors.ErrProfileNotFound
		}
		return entities.BrandProfile{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCreatorProfile(ctx context.Context, userID string) (entities.CreatorProfile, error) {
	var row creatorProfileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.CreatorProfile{}, domainerrors.ErrProfileNotFound
		}
		return entities.CreatorProfile{}, err
	}
	return row.toEntity(), nil
}

// SystemClock is the default runtime clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates UUIDv4 identifiers for users.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type userModel struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email"`
	PasswordHash string    `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		UserID:       strings.TrimSpace(item.UserID),
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
		Role:         item.Role,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:       m.UserID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

type brandProfileModel struct {
	UserID      string    `gorm:"column:user_id;primaryKey"`
	CompanyName string    `gorm:"column:company_name"`
	Website     string    `gorm:"column:website"`
	Industry    string    `gorm:"column:industry"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (brandProfileModel) TableName() string {
	return "brand_profiles"
}

func brandModelFromEntity(item entities.BrandProfile) brandProfileModel {
	return brandProfileModel{
		UserID:      strings.TrimSpace(item.UserID),
		CompanyName: item.CompanyName,
		Website:     item.Website,
		Industry:    item.Industry,
		CreatedAt:   item.CreatedAt.UTC(),
		UpdatedAt:   item.UpdatedAt.UTC(),
	}
}

func (m brandProfileModel) toEntity() entities.BrandProfile {
	return entities.BrandProfile{
		UserID:      m.UserID,
		CompanyName: m.CompanyName,
		Website:     m.Website,
		Industry:    m.Industry,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

type creatorProfileModel struct {
	UserID       string         `gorm:"column:user_id;primaryKey"`
	DisplayName  string         `gorm:"column:display_name"`
	Bio          string         `gorm:"column:bio"`
	Niches       pq.StringArray `gorm:"column:niches;type:text[]"`
	Languages    pq.StringArray `gorm:"column:languages;type:text[]"`
	RateCHF      float64        `gorm:"column:rate_chf"`
	PortfolioURL string         `gorm:"column:portfolio_url"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (creatorProfileModel) TableName() string {
	return "creator_profiles"
}

func creatorModelFromEntity(item entities.CreatorProfile) creatorProfileModel {
	return creatorProfileModel{
		UserID:       strings.TrimSpace(item.UserID),
		DisplayName:  item.DisplayName,
		Bio:          item.Bio,
		Niches:       pq.StringArray(item.Niches),
		Languages:    pq.StringArray(item.Languages),
		RateCHF:      item.RateCHF,
		PortfolioURL: item.PortfolioURL,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m creatorProfileModel) toEntity() entities.CreatorProfile {
	return entities.CreatorProfile{
		UserID:       m.UserID,
		DisplayName:  m.DisplayName,
		Bio:          m.Bio,
		Niches:       []string(m.Niches),
		Languages:    []string(m.Languages),
		RateCHF:      m.RateCHF,
		PortfolioURL: m.PortfolioURL,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
