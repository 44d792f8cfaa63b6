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

	"helvetia/contexts/marketplace/application-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	"helvetia/contexts/marketplace/application-service/ports"
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

func (r *Repository) Create(ctx context.Context, item entities.Application, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := applicationModelFromEntity(item)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateApplication
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

func (r *Repository) Get(ctx context.Context, applicationID string) (entities.Application, error) {
	var row applicationModel
	err := r.db.WithContext(ctx).
		Where("application_id = ?", strings.TrimSpace(applicationID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Application{}, domainerrors.ErrApplicationNotFound
		}
		return entities.Application{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListByCampaign(ctx context.Context, campaignID string) ([]entities.Application, error) {
	var rows []applicationModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) ListByCreator(ctx context.Context, creatorID string) ([]entities.Application, error) {
	var rows []applicationModel
	if err := r.db.WithContext(ctx).
		Where("creator_id = ?", strings.TrimSpace(creatorID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *Repository) UpdateStatus(ctx context.Context, item entities.Application, envelopes []ports.EventEnvelope) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&applicationModel{}).
			Where("application_id = ?", strings.TrimSpace(item.ApplicationID)).
			Updates(map[string]any{
				"status":     string(item.Status),
				"updated_at": item.UpdatedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrApplicationNotFound
		}
		for _, envelope := range envelopes {
			if err := outbox.InsertTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
}

// CampaignDirectory reads campaign rows owned by the campaign module.
// This module only ever reads them.
type CampaignDirectory struct {
	db *gorm.DB
}

func NewCampaignDirectory(db *gorm.DB) *CampaignDirectory {
	return &CampaignDirectory{db: db}
}

func (d *CampaignDirectory) Summary(ctx context.Context, campaignID string) (ports.CampaignSummary, error) {
	var row campaignSummaryModel
	err := d.db.WithContext(ctx).
		Table("campaigns").
		Select("campaign_id", "brand_id", "title", "status").
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CampaignSummary{}, domainerrors.ErrCampaignNotFound
		}
		return ports.CampaignSummary{}, err
	}
	return ports.CampaignSummary{
		CampaignID: row.CampaignID,
		BrandID:    row.BrandID,
		Title:      row.Title,
		Status:     row.Status,
	}, nil
}

// SystemClock is the default runtime clock implementation.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator creates UUIDv4 identifiers for applications and events.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type applicationModel struct {
	ApplicationID string    `gorm:"column:application_id;primaryKey"`
	CampaignID    string    `gorm:"column:campaign_id"`
	CreatorID     string    `gorm:"column:creator_id"`
	Pitch         string    `gorm:"column:pitch"`
	ProposedRate  float64   `gorm:"column:proposed_rate"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (applicationModel) TableName() string {
	return "applications"
}

type campaignSummaryModel struct {
	CampaignID string `gorm:"column:campaign_id"`
	BrandID    string `gorm:"column:brand_id"`
	Title      string `gorm:"column:title"`
	Status     string `gorm:"column:status"`
}

func applicationModelFromEntity(item entities.Application) applicationModel {
	return applicationModel{
		ApplicationID: strings.TrimSpace(item.ApplicationID),
		CampaignID:    strings.TrimSpace(item.CampaignID),
		CreatorID:     strings.TrimSpace(item.CreatorID),
		Pitch:         strings.TrimSpace(item.Pitch),
		ProposedRate:  item.ProposedRateCHF,
		Status:        string(item.Status),
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func (m applicationModel) toEntity() entities.Application {
	return entities.Application{
		ApplicationID:   m.ApplicationID,
		CampaignID:      m.CampaignID,
		CreatorID:       m.CreatorID,
		Pitch:           m.Pitch,
		ProposedRateCHF: m.ProposedRate,
		Status:          entities.ApplicationStatus(m.Status),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

func toEntities(rows []applicationModel) []entities.Application {
	items := make([]entities.Application, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
