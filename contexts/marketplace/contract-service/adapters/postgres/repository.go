package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"helvetia/contexts/marketplace/contract-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	"helvetia/contexts/marketplace/contract-service/ports"
	"helvetia/internal/shared/outbox"
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

func (r *Repository) Create(ctx context.Context, item entities.Contract, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := contractModelFromEntity(item)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateContract
			}
			return err
		}
		for _, envelope := range envelopes {
			if err := outbox.InsertTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) Get(ctx context.Context, contractID string) (entities.Contract, error) {
	var row contractModel
	err := r.db.WithContext(ctx).
		Where("contract_id = ?", strings.TrimSpace(contractID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contract{}, domainerrors.ErrContractNotFound
		}
		return entities.Contract{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetByPair(ctx context.Context, campaignID string, creatorID string) (entities.Contract, error) {
	var row contractModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND creator_id = ?", strings.TrimSpace(campaignID), strings.TrimSpace(creatorID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Contract{}, domainerrors.ErrContractNotFound
		}
		return entities.Contract{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]entities.Contract, error) {
	trimmed := strings.TrimSpace(userID)
	var rows []contractModel
	if err := r.db.WithContext(ctx).
		Where("brand_id = ? OR creator_id = ?", trimmed, trimmed).
		Order("issued_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Contract, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, item entities.Contract, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&contractModel{}).
			Where("contract_id = ?", strings.TrimSpace(item.ContractID)).
			Updates(map[string]any{
				"status":       string(item.Status),
				"signed_at":    normalizeOptionalTime(item.SignedAt),
				"cancelled_at": normalizeOptionalTime(item.CancelledAt),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrContractNotFound
		}
		for _, envelope := range envelopes {
			if err := outbox.InsertTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
}

// SystemClock is the default runtime clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates UUIDv4 identifiers for contracts and events.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type contractModel struct {
	ContractID  string     `gorm:"column:contract_id;primaryKey"`
	CampaignID  string     `gorm:"column:campaign_id"`
	BrandID     string     `gorm:"column:brand_id"`
	CreatorID   string     `gorm:"column:creator_id"`
	Terms       string     `gorm:"column:terms"`
	Status      string     `gorm:"column:status"`
	IssuedAt    time.Time  `gorm:"column:issued_at"`
	SignedAt    *time.Time `gorm:"column:signed_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (contractModel) TableName() string {
	return "contracts"
}

func contractModelFromEntity(item entities.Contract) contractModel {
	return contractModel{
		ContractID:  strings.TrimSpace(item.ContractID),
		CampaignID:  strings.TrimSpace(item.CampaignID),
		BrandID:     strings.TrimSpace(item.BrandID),
		CreatorID:   strings.TrimSpace(item.CreatorID),
		Terms:       item.Terms,
		Status:      string(item.Status),
		IssuedAt:    item.IssuedAt.UTC(),
		SignedAt:    normalizeOptionalTime(item.SignedAt),
		CancelledAt: normalizeOptionalTime(item.CancelledAt),
	}
}

func (m contractModel) toEntity() entities.Contract {
	return entities.Contract{
		ContractID:  m.ContractID,
		CampaignID:  m.CampaignID,
		BrandID:     m.BrandID,
		CreatorID:   m.CreatorID,
		Terms:       m.Terms,
		Status:      entities.ContractStatus(m.Status),
		IssuedAt:    m.IssuedAt.UTC(),
		SignedAt:    normalizeOptionalTime(m.SignedAt),
		CancelledAt: normalizeOptionalTime(m.CancelledAt),
	}
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
