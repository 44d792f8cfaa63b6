package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	application "helvetia/contexts/marketplace/campaign-service/application"
	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	"helvetia/contexts/marketplace/campaign-service/ports"
)

type CreateCampaignCommand struct {
	BrandID        string
	IdempotencyKey string
	Title          string
	Description    string
	ProductName    string
	ProductURL     string
	VideoFormat    string
	ScriptType     string
	ScriptNotes    string
	UsageRights    string
	BudgetCHF      float64
	DeadlineAt     *time.Time
}

type CreateCampaignUseCase struct {
	Repo           ports.WorkflowRepository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

type CreateCampaignResult struct {
	Campaign entities.Campaign
	Replayed bool
}

func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (CreateCampaignResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.IdempotencyKey) == "" {
		return CreateCampaignResult{}, domainerrors.ErrIdempotencyKeyRequired
	}

	now := uc.Clock.Now().UTC()
	requestHash := hashStrings(
		strings.TrimSpace(cmd.BrandID),
		strings.TrimSpace(cmd.Title),
		strings.TrimSpace(cmd.Description),
		strings.TrimSpace(cmd.VideoFormat),
		strings.TrimSpace(cmd.ScriptType),
		strings.TrimSpace(cmd.UsageRights),
		strconv.FormatFloat(cmd.BudgetCHF, 'f', -1, 64),
	)

	if record, found, err := uc.Idempotency.Get(ctx, cmd.IdempotencyKey, now); err != nil {
		return CreateCampaignResult{}, err
	} else if found {
		if record.RequestHash != requestHash {
			return CreateCampaignResult{}, domainerrors.ErrIdempotencyKeyConflict
		}
		var campaign entities.Campaign
		if err := json.Unmarshal(record.Payload, &campaign); err != nil {
			return CreateCampaignResult{}, err
		}
		return CreateCampaignResult{Campaign: campaign, Replayed: true}, nil
	}

	campaignID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateCampaignResult{}, err
	}

	campaign := entities.Campaign{
		CampaignID:  campaignID,
		BrandID:     strings.TrimSpace(cmd.BrandID),
		Title:       strings.TrimSpace(cmd.Title),
		Description: strings.TrimSpace(cmd.Description),
		ProductName: strings.TrimSpace(cmd.ProductName),
		ProductURL:  strings.TrimSpace(cmd.ProductURL),
		VideoFormat: entities.VideoFormat(strings.TrimSpace(cmd.VideoFormat)),
		ScriptType:  entities.ScriptType(strings.TrimSpace(cmd.ScriptType)),
		ScriptNotes: strings.TrimSpace(cmd.ScriptNotes),
		UsageRights: entities.UsageRights(strings.TrimSpace(cmd.UsageRights)),
		BudgetCHF:   cmd.BudgetCHF,
		DeadlineAt:  cmd.DeadlineAt,
		Status:      entities.CampaignStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if campaign.ScriptType == "" {
		campaign.ScriptType = entities.ScriptTypeCreatorLed
	}
	if campaign.BrandID == "" || !campaign.ValidateBasics(now) {
		return CreateCampaignResult{}, domainerrors.ErrInvalidCampaignInput
	}

	stepIDs := make([]string, 0, len(entities.StepOrder))
	for range entities.StepOrder {
		id, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return CreateCampaignResult{}, err
		}
		stepIDs = append(stepIDs, id)
	}
	steps := entities.SeedSteps(campaign.CampaignID, stepIDs, now)

	if err := uc.Repo.CreateCampaign(ctx, campaign, steps, nil); err != nil {
		return CreateCampaignResult{}, err
	}

	serialized, err := json.Marshal(campaign)
	if err != nil {
		return CreateCampaignResult{}, err
	}
	if err := uc.Idempotency.Put(ctx, ports.IdempotencyRecord{
		Key:         cmd.IdempotencyKey,
		RequestHash: requestHash,
		Payload:     serialized,
		ExpiresAt:   now.Add(uc.IdempotencyTTL),
	}); err != nil {
		return CreateCampaignResult{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
		"budget_chf", fmt.Sprintf("%.2f", campaign.BudgetCHF),
	)
	return CreateCampaignResult{Campaign: campaign}, nil
}

func hashStrings(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(sum[:])
}
