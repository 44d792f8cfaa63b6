package postgresadapter

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
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

func (r *Repository) CreateCampaign(
	ctx context.Context,
	campaign entities.Campaign,
	steps []entities.MissionStep,
	envelopes []ports.EventEnvelope,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := campaignModelFromEntity(campaign)
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrInvalidCampaignInput
			}
			return err
		}
		for _, step := range steps {
			stepRow := stepModelFromEntity(step)
			if err := tx.Create(&stepRow).Error; err != nil {
				return err
			}
		}
		for _, envelope := range envelopes {
			if err := outbox.InsertTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var row campaignModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrCampaignNotFound
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListCampaigns(ctx context.Context, filter ports.CampaignFilter) ([]entities.Campaign, error) {
	tx := r.db.WithContext(ctx).Model(&campaignModel{})
	if strings.TrimSpace(filter.BrandID) != "" {
		tx = tx.Where("brand_id = ?", strings.TrimSpace(filter.BrandID))
	}
	if strings.TrimSpace(filter.CreatorID) != "" {
		tx = tx.Where("selected_creator_id = ?", strings.TrimSpace(filter.CreatorID))
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}

	var rows []campaignModel
	if err := tx.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListSteps(ctx context.Context, campaignID string) ([]entities.MissionStep, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&campaignModel{}).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Count(&count).
		Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, domainerrors.ErrCampaignNotFound
	}

	var rows []missionStepModel
	if err := r.db.WithContext(ctx).
		Where("campaign_id = ?", strings.TrimSpace(campaignID)).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.MissionStep, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ApplyTransition writes the campaign row, the step rows, and the outbox
// envelopes in one transaction so workflow state and notifications cannot
// drift apart.
func (r *Repository) ApplyTransition(ctx context.Context, transition ports.Transition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked campaignModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ?", strings.TrimSpace(transition.CampaignID)).
			First(&locked).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrCampaignNotFound
			}
			return err
		}

		if transition.Campaign != nil {
			if err := tx.Model(&campaignModel{}).
				Where("campaign_id = ?", locked.CampaignID).
				Updates(campaignUpdatesFromEntity(*transition.Campaign)).
				Error; err != nil {
				return err
			}
		}

		for _, step := range transition.Steps {
			result := tx.Model(&missionStepModel{}).
				Where("campaign_id = ? AND step_type = ?", locked.CampaignID, string(step.Type)).
				Updates(map[string]any{
					"status":     string(step.Status),
					"payload":    step.Payload,
					"updated_at": step.UpdatedAt.UTC(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return domainerrors.ErrStepNotFound
			}
		}

		for _, envelope := range transition.Outbox {
			if err := outbox.InsertTx(tx, envelope); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) CancelCampaignsPastDeadline(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]string, error) {
	if limit <= 0 {
		limit = 100
	}
	timestamp := now.UTC()

	cancelled := make([]string, 0)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []campaignModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND deadline IS NOT NULL AND deadline < ?", string(entities.CampaignStatusOpen), timestamp).
			Order("deadline ASC").
			Limit(limit).
			Find(&rows).
			Error; err != nil {
			return err
		}

		for _, row := range rows {
			campaign := row.toEntity()
			campaign.Status = entities.CampaignStatusCancelled
			campaign.UpdatedAt = timestamp
			cancelledAt := timestamp
			campaign.CancelledAt = &cancelledAt

			if err := tx.Model(&campaignModel{}).
				Where("campaign_id = ?", campaign.CampaignID).
				Updates(campaignUpdatesFromEntity(campaign)).
				Error; err != nil {
				return err
			}
			cancelled = append(cancelled, campaign.CampaignID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}

	if !row.ExpiresAt.IsZero() && now.UTC().After(row.ExpiresAt.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("key = ?", strings.TrimSpace(key)).
			Delete(&idempotencyModel{}).
			Error; err != nil {
			return ports.IdempotencyRecord{}, false, err
		}
		return ports.IdempotencyRecord{}, false, nil
	}

	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Payload:     append([]byte(nil), row.ResponsePayload...),
		ExpiresAt:   row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             strings.TrimSpace(record.Key),
		RequestHash:     record.RequestHash,
		ResponsePayload: append([]byte(nil), record.Payload...),
		ExpiresAt:       record.ExpiresAt.UTC(),
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return nil
	}

	var existing idempotencyModel
	if err := r.db.WithContext(ctx).
		Where("key = ?", row.Key).
		First(&existing).
		Error; err != nil {
		return err
	}
	if existing.RequestHash != row.RequestHash || !bytes.Equal(existing.ResponsePayload, row.ResponsePayload) {
		return domainerrors.ErrIdempotencyKeyConflict
	}
	return nil
}

type campaignModel struct {
	CampaignID        string     `gorm:"column:campaign_id;primaryKey"`
	BrandID           string     `gorm:"column:brand_id"`
	Title             string     `gorm:"column:title"`
	Description       string     `gorm:"column:description"`
	ProductName       string     `gorm:"column:product_name"`
	ProductURL        string     `gorm:"column:product_url"`
	VideoFormat       string     `gorm:"column:video_format"`
	ScriptType        string     `gorm:"column:script_type"`
	ScriptNotes       string     `gorm:"column:script_notes"`
	UsageRights       string     `gorm:"column:usage_rights"`
	BudgetCHF         float64    `gorm:"column:budget_chf"`
	DeadlineAt        *time.Time `gorm:"column:deadline"`
	Status            string     `gorm:"column:status"`
	SelectedCreatorID string     `gorm:"column:selected_creator_id"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
	CompletedAt       *time.Time `gorm:"column:completed_at"`
	CancelledAt       *time.Time `gorm:"column:cancelled_at"`
}

func (campaignModel) TableName() string {
	return "campaigns"
}

func campaignModelFromEntity(item entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:        strings.TrimSpace(item.CampaignID),
		BrandID:           strings.TrimSpace(item.BrandID),
		Title:             strings.TrimSpace(item.Title),
		Description:       strings.TrimSpace(item.Description),
		ProductName:       strings.TrimSpace(item.ProductName),
		ProductURL:        strings.TrimSpace(item.ProductURL),
		VideoFormat:       string(item.VideoFormat),
		ScriptType:        string(item.ScriptType),
		ScriptNotes:       strings.TrimSpace(item.ScriptNotes),
		UsageRights:       string(item.UsageRights),
		BudgetCHF:         item.BudgetCHF,
		DeadlineAt:        normalizeOptionalTime(item.DeadlineAt),
		Status:            string(item.Status),
		SelectedCreatorID: strings.TrimSpace(item.SelectedCreatorID),
		CreatedAt:         item.CreatedAt.UTC(),
		UpdatedAt:         item.UpdatedAt.UTC(),
		CompletedAt:       normalizeOptionalTime(item.CompletedAt),
		CancelledAt:       normalizeOptionalTime(item.CancelledAt),
	}
}

func campaignUpdatesFromEntity(item entities.Campaign) map[string]any {
	row := campaignModelFromEntity(item)
	return map[string]any{
		"title":               row.Title,
		"description":         row.Description,
		"product_name":        row.ProductName,
		"product_url":         row.ProductURL,
		"video_format":        row.VideoFormat,
		"script_type":         row.ScriptType,
		"script_notes":        row.ScriptNotes,
		"usage_rights":        row.UsageRights,
		"budget_chf":          row.BudgetCHF,
		"deadline":            row.DeadlineAt,
		"status":              row.Status,
		"selected_creator_id": row.SelectedCreatorID,
		"updated_at":          row.UpdatedAt,
		"completed_at":        row.CompletedAt,
		"cancelled_at":        row.CancelledAt,
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		CampaignID:        m.CampaignID,
		BrandID:           m.BrandID,
		Title:             m.Title,
		Description:       m.Description,
		ProductName:       m.ProductName,
		ProductURL:        m.ProductURL,
		VideoFormat:       entities.VideoFormat(m.VideoFormat),
		ScriptType:        entities.ScriptType(m.ScriptType),
		ScriptNotes:       m.ScriptNotes,
		UsageRights:       entities.UsageRights(m.UsageRights),
		BudgetCHF:         m.BudgetCHF,
		DeadlineAt:        normalizeOptionalTime(m.DeadlineAt),
		Status:            entities.CampaignStatus(m.Status),
		SelectedCreatorID: m.SelectedCreatorID,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
		CompletedAt:       normalizeOptionalTime(m.CompletedAt),
		CancelledAt:       normalizeOptionalTime(m.CancelledAt),
	}
}

type missionStepModel struct {
	StepID     string    `gorm:"column:step_id;primaryKey"`
	CampaignID string    `gorm:"column:campaign_id"`
	StepType   string    `gorm:"column:step_type"`
	Status     string    `gorm:"column:status"`
	Payload    string    `gorm:"column:payload"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (missionStepModel) TableName() string {
	return "mission_steps"
}

func stepModelFromEntity(item entities.MissionStep) missionStepModel {
	return missionStepModel{
		StepID:     strings.TrimSpace(item.StepID),
		CampaignID: strings.TrimSpace(item.CampaignID),
		StepType:   string(item.Type),
		Status:     string(item.Status),
		Payload:    item.Payload,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func (m missionStepModel) toEntity() entities.MissionStep {
	return entities.MissionStep{
		StepID:     m.StepID,
		CampaignID: m.CampaignID,
		Type:       entities.StepType(m.StepType),
		Status:     entities.StepStatus(m.Status),
		Payload:    m.Payload,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type idempotencyModel struct {
	Key             string    `gorm:"column:key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "idempotency_keys"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
