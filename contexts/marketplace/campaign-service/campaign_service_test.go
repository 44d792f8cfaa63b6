package campaignservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"helvetia/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/campaign-service/domain/errors"
	httptransport "helvetia/contexts/marketplace/campaign-service/transport/http"
	"helvetia/internal/shared/events"
)

func validCreateRequest() httptransport.CreateCampaignRequest {
	return httptransport.CreateCampaignRequest{
		Title:       "Alpine Skincare Launch",
		Description: "Authentic short-form videos for our new moisturizer line",
		ProductName: "GlacierCream",
		VideoFormat: string(entities.VideoFormatVertical),
		ScriptType:  string(entities.ScriptTypeCreatorLed),
		UsageRights: string(entities.UsageRightsOrganic),
		BudgetCHF:   800,
	}
}

func mustCreate(t *testing.T, module Module, brandID string, key string) httptransport.CampaignDTO {
	t.Helper()
	created, err := module.Handler.CreateCampaignHandler(context.Background(), brandID, key, validCreateRequest())
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return created.Campaign
}

// mustSelect drives a fresh campaign through propose and select so tests
// can start from an in_progress mission.
func mustSelect(t *testing.T, module Module, brandID string, creatorID string, key string) httptransport.CampaignDTO {
	t.Helper()
	ctx := context.Background()
	campaign := mustCreate(t, module, brandID, key)

	err := module.Handler.ProposeCreatorsHandler(ctx, "admin", campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{creatorID, "creator-alt"},
	})
	if err != nil {
		t.Fatalf("propose creators failed: %v", err)
	}
	err = module.Handler.SelectCreatorHandler(ctx, brandID, "brand", campaign.CampaignID, httptransport.SelectCreatorRequest{
		CreatorID: creatorID,
	})
	if err != nil {
		t.Fatalf("select creator failed: %v", err)
	}
	return campaign
}

func TestCreateCampaignStartsDraftWithSeededSteps(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	campaign := mustCreate(t, module, "brand-1", "idem-1")
	if campaign.Status != string(entities.CampaignStatusDraft) {
		t.Fatalf("expected draft status, got %s", campaign.Status)
	}

	detail, err := module.Handler.GetCampaignHandler(context.Background(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if len(detail.Steps) != len(entities.StepOrder) {
		t.Fatalf("expected %d steps, got %d", len(entities.StepOrder), len(detail.Steps))
	}
	byType := make(map[string]httptransport.MissionStepDTO, len(detail.Steps))
	for _, step := range detail.Steps {
		byType[step.StepType] = step
	}
	if byType[string(entities.StepBriefReceived)].Status != string(entities.StepStatusDone) {
		t.Fatalf("expected brief step done, got %s", byType[string(entities.StepBriefReceived)].Status)
	}
	if byType[string(entities.StepProfilesProposed)].Status != string(entities.StepStatusPending) {
		t.Fatalf("expected proposal step pending")
	}
}

func TestCreateCampaignIdempotencyReplay(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	first, err := module.Handler.CreateCampaignHandler(ctx, "brand-1", "idem-replay", validCreateRequest())
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	second, err := module.Handler.CreateCampaignHandler(ctx, "brand-1", "idem-replay", validCreateRequest())
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if !second.Replayed {
		t.Fatalf("expected replayed response")
	}
	if first.Campaign.CampaignID != second.Campaign.CampaignID {
		t.Fatalf("expected same campaign id, got %s and %s", first.Campaign.CampaignID, second.Campaign.CampaignID)
	}

	changed := validCreateRequest()
	changed.BudgetCHF = 900
	_, err = module.Handler.CreateCampaignHandler(ctx, "brand-1", "idem-replay", changed)
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestCreateCampaignRejectsInvalidInput(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	req := validCreateRequest()
	req.BudgetCHF = 10
	_, err := module.Handler.CreateCampaignHandler(context.Background(), "brand-1", "idem-budget", req)
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for low budget, got %v", err)
	}

	_, err = module.Handler.CreateCampaignHandler(context.Background(), "brand-1", "", validCreateRequest())
	if !errors.Is(err, domainerrors.ErrIdempotencyKeyRequired) {
		t.Fatalf("expected idempotency key required, got %v", err)
	}
}

func TestProposeCreatorsOpensCampaign(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustCreate(t, module, "brand-1", "idem-propose")

	err := module.Handler.ProposeCreatorsHandler(ctx, "brand", campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{"creator-1"},
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for brand role, got %v", err)
	}

	err = module.Handler.ProposeCreatorsHandler(ctx, "admin", campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{"creator-1", "creator-2"},
	})
	if err != nil {
		t.Fatalf("propose creators failed: %v", err)
	}

	detail, err := module.Handler.GetCampaignHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if detail.Campaign.Status != string(entities.CampaignStatusOpen) {
		t.Fatalf("expected open status, got %s", detail.Campaign.Status)
	}
	for _, step := range detail.Steps {
		if step.StepType == string(entities.StepProfilesProposed) && step.Status != string(entities.StepStatusInProgress) {
			t.Fatalf("expected proposal step in_progress, got %s", step.Status)
		}
	}
}

func TestSelectCreatorMovesCampaignInProgress(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-select")

	detail, err := module.Handler.GetCampaignHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if detail.Campaign.Status != string(entities.CampaignStatusInProgress) {
		t.Fatalf("expected in_progress status, got %s", detail.Campaign.Status)
	}
	if detail.Campaign.SelectedCreatorID != "creator-1" {
		t.Fatalf("expected selected creator, got %q", detail.Campaign.SelectedCreatorID)
	}

	var intents, contractRequests int
	for _, envelope := range module.Store.Outbox() {
		switch envelope.EventType {
		case events.TypeNotificationRequested:
			intents++
		case events.TypeContractRequested:
			contractRequests++
		}
	}
	if intents < 2 {
		t.Fatalf("expected notification intents for brand and creator, got %d", intents)
	}
	if contractRequests != 1 {
		t.Fatalf("expected one contract request, got %d", contractRequests)
	}
}

func TestSelectCreatorRequiresProposedProfile(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustCreate(t, module, "brand-1", "idem-unproposed")

	err := module.Handler.ProposeCreatorsHandler(ctx, "admin", campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{"creator-1"},
	})
	if err != nil {
		t.Fatalf("propose creators failed: %v", err)
	}
	err = module.Handler.SelectCreatorHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.SelectCreatorRequest{
		CreatorID: "creator-unknown",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected invalid input for unproposed creator, got %v", err)
	}
}

func TestRejectProfilesRequiresManualRepropose(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustCreate(t, module, "brand-1", "idem-reject")

	err := module.Handler.ProposeCreatorsHandler(ctx, "admin", campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{"creator-1"},
	})
	if err != nil {
		t.Fatalf("propose creators failed: %v", err)
	}
	err = module.Handler.RejectProfilesHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.RejectProfilesRequest{
		Reason: "not a fit for the product",
	})
	if err != nil {
		t.Fatalf("reject profiles failed: %v", err)
	}

	err = module.Handler.SelectCreatorHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.SelectCreatorRequest{
		CreatorID: "creator-1",
	})
	if !errors.Is(err, domainerrors.ErrStepOrderViolation) {
		t.Fatalf("expected step order violation after rejection, got %v", err)
	}

	err = module.Handler.ProposeCreatorsHandler(ctx, "admin", campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{"creator-2"},
	})
	if err != nil {
		t.Fatalf("re-propose failed: %v", err)
	}
	err = module.Handler.SelectCreatorHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.SelectCreatorRequest{
		CreatorID: "creator-2",
	})
	if err != nil {
		t.Fatalf("select after re-propose failed: %v", err)
	}
}

func TestSubmitScriptRequiresActiveContract(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-gate")

	err := module.Handler.SubmitScriptHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitScriptRequest{
		Script: "Hook, demo, call to action.",
	})
	if !errors.Is(err, domainerrors.ErrContractNotSigned) {
		t.Fatalf("expected contract gate error, got %v", err)
	}

	module.Gate.Sign(campaign.CampaignID, "creator-1")
	err = module.Handler.SubmitScriptHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitScriptRequest{
		Script: "Hook, demo, call to action.",
	})
	if err != nil {
		t.Fatalf("submit script failed: %v", err)
	}
}

func TestSubmitScriptOnlySelectedCreator(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-actor")
	module.Gate.Sign(campaign.CampaignID, "creator-1")

	err := module.Handler.SubmitScriptHandler(ctx, "creator-other", campaign.CampaignID, httptransport.SubmitScriptRequest{
		Script: "Hook, demo, call to action.",
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for other creator, got %v", err)
	}
}

func TestScriptRevisionKeepsCampaignStatus(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-revision")
	module.Gate.Sign(campaign.CampaignID, "creator-1")

	err := module.Handler.SubmitScriptHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitScriptRequest{
		Script: "First draft of the script.",
	})
	if err != nil {
		t.Fatalf("submit script failed: %v", err)
	}

	err = module.Handler.ReviewScriptHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewScriptRequest{
		Approve: false,
		Note:    "Please mention the price in the opening.",
	})
	if err != nil {
		t.Fatalf("request revision failed: %v", err)
	}

	detail, err := module.Handler.GetCampaignHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if detail.Campaign.Status != string(entities.CampaignStatusInProgress) {
		t.Fatalf("revision must not change campaign status, got %s", detail.Campaign.Status)
	}
	for _, step := range detail.Steps {
		if step.StepType == string(entities.StepScriptSubmitted) {
			if step.Status != string(entities.StepStatusInProgress) {
				t.Fatalf("expected submission step reopened, got %s", step.Status)
			}
			if step.Payload != "Please mention the price in the opening." {
				t.Fatalf("expected revision note on step, got %q", step.Payload)
			}
		}
	}

	err = module.Handler.SubmitScriptHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitScriptRequest{
		Script: "Second draft of the script with the price.",
	})
	if err != nil {
		t.Fatalf("resubmit script failed: %v", err)
	}
}

func TestVideoSubmitBeforeScriptApprovalFails(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-order")
	module.Gate.Sign(campaign.CampaignID, "creator-1")

	err := module.Handler.SubmitVideoHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitVideoRequest{
		MediaKey: "media/campaign/final.mp4",
	})
	if !errors.Is(err, domainerrors.ErrStepOrderViolation) {
		t.Fatalf("expected step order violation, got %v", err)
	}
}

func TestFullMissionFlowCompletes(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-full")
	module.Gate.Sign(campaign.CampaignID, "creator-1")

	steps := []func() error{
		func() error {
			return module.Handler.SubmitScriptHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitScriptRequest{
				Script: "Final script draft.",
			})
		},
		func() error {
			return module.Handler.ReviewScriptHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewScriptRequest{
				Approve: true,
			})
		},
		func() error {
			return module.Handler.SubmitVideoHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitVideoRequest{
				MediaKey: "media/campaign/final.mp4",
			})
		},
		func() error {
			return module.Handler.ReviewVideoHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewVideoRequest{
				Action: "approve",
			})
		},
		func() error {
			return module.Handler.CompleteMissionHandler(ctx, "brand-1", "brand", campaign.CampaignID)
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("flow step %d failed: %v", i, err)
		}
	}

	detail, err := module.Handler.GetCampaignHandler(ctx, campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if detail.Campaign.Status != string(entities.CampaignStatusCompleted) {
		t.Fatalf("expected completed status, got %s", detail.Campaign.Status)
	}
	if detail.Campaign.CompletedAt == "" {
		t.Fatalf("expected completed_at to be set")
	}

	var completedEvents int
	for _, envelope := range module.Store.Outbox() {
		if envelope.EventType == events.TypeCampaignCompleted {
			completedEvents++
		}
	}
	if completedEvents != 1 {
		t.Fatalf("expected one completion event, got %d", completedEvents)
	}
}

func TestVideoRevisionAndRejectVerdicts(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustSelect(t, module, "brand-1", "creator-1", "idem-verdict")
	module.Gate.Sign(campaign.CampaignID, "creator-1")

	if err := module.Handler.SubmitScriptHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitScriptRequest{Script: "Script."}); err != nil {
		t.Fatalf("submit script failed: %v", err)
	}
	if err := module.Handler.ReviewScriptHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewScriptRequest{Approve: true}); err != nil {
		t.Fatalf("approve script failed: %v", err)
	}
	if err := module.Handler.SubmitVideoHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitVideoRequest{MediaKey: "media/v1.mp4"}); err != nil {
		t.Fatalf("submit video failed: %v", err)
	}

	err := module.Handler.ReviewVideoHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewVideoRequest{
		Action: "request_revision",
	})
	if !errors.Is(err, domainerrors.ErrInvalidCampaignInput) {
		t.Fatalf("expected note required for revision, got %v", err)
	}

	err = module.Handler.ReviewVideoHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewVideoRequest{
		Action: "request_revision",
		Note:   "Lighting is too dark in the intro.",
	})
	if err != nil {
		t.Fatalf("request revision failed: %v", err)
	}

	if err := module.Handler.SubmitVideoHandler(ctx, "creator-1", campaign.CampaignID, httptransport.SubmitVideoRequest{MediaKey: "media/v2.mp4"}); err != nil {
		t.Fatalf("resubmit video failed: %v", err)
	}
	err = module.Handler.ReviewVideoHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.ReviewVideoRequest{
		Action: "reject",
		Note:   "The deliverable does not match the brief.",
	})
	if err != nil {
		t.Fatalf("reject video failed: %v", err)
	}

	err = module.Handler.CompleteMissionHandler(ctx, "brand-1", "brand", campaign.CampaignID)
	if !errors.Is(err, domainerrors.ErrStepOrderViolation) {
		t.Fatalf("expected completion blocked after rejection, got %v", err)
	}
}

func TestCancelCampaignFromAnyNonTerminalState(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()
	campaign := mustCreate(t, module, "brand-1", "idem-cancel")

	err := module.Handler.CancelCampaignHandler(ctx, "brand-other", "brand", campaign.CampaignID, httptransport.CancelCampaignRequest{})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for other brand, got %v", err)
	}

	err = module.Handler.CancelCampaignHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.CancelCampaignRequest{
		Reason: "budget withdrawn",
	})
	if err != nil {
		t.Fatalf("cancel campaign failed: %v", err)
	}

	err = module.Handler.CancelCampaignHandler(ctx, "brand-1", "brand", campaign.CampaignID, httptransport.CancelCampaignRequest{})
	if !errors.Is(err, domainerrors.ErrInvalidStateTransition) {
		t.Fatalf("expected invalid transition on second cancel, got %v", err)
	}
}

func TestDeadlineSweeperCancelsExpiredOpenCampaigns(t *testing.T) {
	module := NewInMemoryModule(nil, nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	module.Store.SetNow(base)

	req := validCreateRequest()
	req.Deadline = base.Add(24 * time.Hour).Format(time.RFC3339)
	created, err := module.Handler.CreateCampaignHandler(ctx, "brand-1", "idem-sweep", req)
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	err = module.Handler.ProposeCreatorsHandler(ctx, "admin", created.Campaign.CampaignID, httptransport.ProposeCreatorsRequest{
		ProfileIDs: []string{"creator-1"},
	})
	if err != nil {
		t.Fatalf("propose creators failed: %v", err)
	}

	module.Store.SetNow(base.Add(48 * time.Hour))
	if err := module.DeadlineSweeper.RunOnce(ctx); err != nil {
		t.Fatalf("deadline sweep failed: %v", err)
	}

	detail, err := module.Handler.GetCampaignHandler(ctx, created.Campaign.CampaignID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if detail.Campaign.Status != string(entities.CampaignStatusCancelled) {
		t.Fatalf("expected cancelled after sweep, got %s", detail.Campaign.Status)
	}
}
