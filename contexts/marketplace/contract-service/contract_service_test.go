package contractservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"helvetia/contexts/marketplace/contract-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/contract-service/domain/errors"
	"helvetia/internal/shared/events"
)

func TestContractRequestedIssuesPendingContract(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	env, err := events.NewEnvelope("evt-1", events.TypeContractRequested, "campaign-service", "camp-1", time.Now().UTC(), events.ContractRequest{
		CampaignID:  "camp-1",
		BrandID:     "brand-1",
		CreatorID:   "creator-1",
		Title:       "Alpine Skincare Launch",
		BudgetCHF:   800,
		UsageRights: "organic",
	})
	if err != nil {
		t.Fatalf("build envelope failed: %v", err)
	}
	if err := module.Consumer.Handle(ctx, env); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	item, err := module.Store.GetByPair(ctx, "camp-1", "creator-1")
	if err != nil {
		t.Fatalf("contract lookup failed: %v", err)
	}
	if item.Status != entities.ContractStatusPendingSignature {
		t.Fatalf("expected pending_signature, got %s", item.Status)
	}
	if item.Terms == "" {
		t.Fatalf("expected rendered terms")
	}

	// Replay of the same event must not create a second contract.
	if err := module.Consumer.Handle(ctx, env); err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	items, err := module.Store.ListByUser(ctx, "creator-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one contract after replay, got %d", len(items))
	}
}

func TestSignActivatesContractAndGate(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	env, err := events.NewEnvelope("evt-2", events.TypeContractRequested, "campaign-service", "camp-1", time.Now().UTC(), events.ContractRequest{
		CampaignID:  "camp-1",
		BrandID:     "brand-1",
		CreatorID:   "creator-1",
		Title:       "Alpine Skincare Launch",
		BudgetCHF:   800,
		UsageRights: "organic",
	})
	if err != nil {
		t.Fatalf("build envelope failed: %v", err)
	}
	if err := module.Consumer.Handle(ctx, env); err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	item, err := module.Store.GetByPair(ctx, "camp-1", "creator-1")
	if err != nil {
		t.Fatalf("contract lookup failed: %v", err)
	}

	active, err := module.Gate.Active(ctx, "camp-1", "creator-1")
	if err != nil {
		t.Fatalf("gate check failed: %v", err)
	}
	if active {
		t.Fatalf("gate must be closed before signature")
	}

	err = module.Handler.SignContractHandler(ctx, "creator-other", item.ContractID)
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for other creator, got %v", err)
	}
	if err := module.Handler.SignContractHandler(ctx, "creator-1", item.ContractID); err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	err = module.Handler.SignContractHandler(ctx, "creator-1", item.ContractID)
	if !errors.Is(err, domainerrors.ErrInvalidContractState) {
		t.Fatalf("expected invalid state on double sign, got %v", err)
	}

	active, err = module.Gate.Active(ctx, "camp-1", "creator-1")
	if err != nil {
		t.Fatalf("gate check failed: %v", err)
	}
	if !active {
		t.Fatalf("gate must open after signature")
	}

	var signedEvents int
	for _, envelope := range module.Store.Outbox() {
		if envelope.EventType == events.TypeContractSigned {
			signedEvents++
		}
	}
	if signedEvents != 1 {
		t.Fatalf("expected one contract.signed event, got %d", signedEvents)
	}
}

func TestCampaignCancelledVoidsContract(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	requested, err := events.NewEnvelope("evt-3", events.TypeContractRequested, "campaign-service", "camp-1", time.Now().UTC(), events.ContractRequest{
		CampaignID:  "camp-1",
		BrandID:     "brand-1",
		CreatorID:   "creator-1",
		Title:       "Alpine Skincare Launch",
		BudgetCHF:   800,
		UsageRights: "organic",
	})
	if err != nil {
		t.Fatalf("build envelope failed: %v", err)
	}
	if err := module.Consumer.Handle(ctx, requested); err != nil {
		t.Fatalf("consume failed: %v", err)
	}

	cancelled, err := events.NewEnvelope("evt-4", events.TypeCampaignCancelled, "campaign-service", "camp-1", time.Now().UTC(), map[string]any{
		"campaign_id": "camp-1",
		"brand_id":    "brand-1",
		"creator_id":  "creator-1",
		"reason":      "budget withdrawn",
	})
	if err != nil {
		t.Fatalf("build cancel envelope failed: %v", err)
	}
	if err := module.Consumer.Handle(ctx, cancelled); err != nil {
		t.Fatalf("cancel consume failed: %v", err)
	}

	item, err := module.Store.GetByPair(ctx, "camp-1", "creator-1")
	if err != nil {
		t.Fatalf("contract lookup failed: %v", err)
	}
	if item.Status != entities.ContractStatusCancelled {
		t.Fatalf("expected cancelled contract, got %s", item.Status)
	}

	active, err := module.Gate.Active(ctx, "camp-1", "creator-1")
	if err != nil {
		t.Fatalf("gate check failed: %v", err)
	}
	if active {
		t.Fatalf("gate must stay closed for a cancelled contract")
	}
}
