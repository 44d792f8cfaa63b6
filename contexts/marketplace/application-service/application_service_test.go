package applicationservice

import (
	"context"
	"errors"
	"strings"
	"testing"

	"helvetia/contexts/marketplace/application-service/domain/entities"
	domainerrors "helvetia/contexts/marketplace/application-service/domain/errors"
	"helvetia/contexts/marketplace/application-service/ports"
	httptransport "helvetia/contexts/marketplace/application-service/transport/http"
	"helvetia/internal/shared/events"
)

const validPitch = "I make short-form videos about skincare routines and can deliver within a week."

func openCampaignModule(t *testing.T) Module {
	t.Helper()
	module := NewInMemoryModule(nil)
	module.Store.SeedCampaign(ports.CampaignSummary{
		CampaignID: "camp-1",
		BrandID:    "brand-1",
		Title:      "Alpine Skincare Launch",
		Status:     "open",
	})
	return module
}

func TestApplyToOpenCampaignNotifiesBrand(t *testing.T) {
	module := openCampaignModule(t)
	ctx := context.Background()

	resp, err := module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID:      "camp-1",
		Pitch:           validPitch,
		ProposedRateCHF: 350,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if resp.Application.Status != string(entities.ApplicationStatusPending) {
		t.Fatalf("expected pending status, got %s", resp.Application.Status)
	}

	envelopes := module.Store.Outbox()
	if len(envelopes) != 1 {
		t.Fatalf("expected one outbox envelope, got %d", len(envelopes))
	}
	if envelopes[0].EventType != events.TypeNotificationRequested {
		t.Fatalf("expected notification intent, got %s", envelopes[0].EventType)
	}
}

func TestApplyRejectsClosedCampaignAndBadInput(t *testing.T) {
	module := openCampaignModule(t)
	module.Store.SeedCampaign(ports.CampaignSummary{
		CampaignID: "camp-closed",
		BrandID:    "brand-1",
		Status:     "in_progress",
	})
	ctx := context.Background()

	_, err := module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-closed",
		Pitch:      validPitch,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotOpen) {
		t.Fatalf("expected campaign not open, got %v", err)
	}

	_, err = module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      "too short",
	})
	if !errors.Is(err, domainerrors.ErrInvalidApplicationInput) {
		t.Fatalf("expected invalid input for short pitch, got %v", err)
	}

	_, err = module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      strings.Repeat("long pitch ", 200),
	})
	if !errors.Is(err, domainerrors.ErrInvalidApplicationInput) {
		t.Fatalf("expected invalid input for oversized pitch, got %v", err)
	}

	_, err = module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID:      "camp-1",
		Pitch:           validPitch,
		ProposedRateCHF: -5,
	})
	if !errors.Is(err, domainerrors.ErrInvalidApplicationInput) {
		t.Fatalf("expected invalid input for negative rate, got %v", err)
	}
}

func TestDuplicateApplicationRejected(t *testing.T) {
	module := openCampaignModule(t)
	ctx := context.Background()

	_, err := module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      validPitch,
	})
	if err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	_, err = module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      validPitch,
	})
	if !errors.Is(err, domainerrors.ErrDuplicateApplication) {
		t.Fatalf("expected duplicate application, got %v", err)
	}
}

func TestWithdrawOnlyPendingAndOwnApplication(t *testing.T) {
	module := openCampaignModule(t)
	ctx := context.Background()

	resp, err := module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      validPitch,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	err = module.Handler.WithdrawHandler(ctx, "creator-other", resp.Application.ApplicationID)
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	if err := module.Handler.WithdrawHandler(ctx, "creator-1", resp.Application.ApplicationID); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	err = module.Handler.WithdrawHandler(ctx, "creator-1", resp.Application.ApplicationID)
	if !errors.Is(err, domainerrors.ErrInvalidStatusChange) {
		t.Fatalf("expected invalid status change on second withdraw, got %v", err)
	}
}

func TestDecideAcceptAndRejectTransitions(t *testing.T) {
	module := openCampaignModule(t)
	ctx := context.Background()

	first, err := module.Handler.ApplyHandler(ctx, "creator-1", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      validPitch,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	second, err := module.Handler.ApplyHandler(ctx, "creator-2", httptransport.ApplyRequest{
		CampaignID: "camp-1",
		Pitch:      validPitch,
	})
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}

	err = module.Handler.DecideHandler(ctx, "brand-other", "brand", first.Application.ApplicationID, httptransport.DecideRequest{Action: "accept"})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for other brand, got %v", err)
	}

	if err := module.Handler.DecideHandler(ctx, "brand-1", "brand", first.Application.ApplicationID, httptransport.DecideRequest{Action: "accept"}); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if err := module.Handler.DecideHandler(ctx, "brand-1", "brand", second.Application.ApplicationID, httptransport.DecideRequest{Action: "reject"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	err = module.Handler.DecideHandler(ctx, "brand-1", "brand", first.Application.ApplicationID, httptransport.DecideRequest{Action: "reject"})
	if !errors.Is(err, domainerrors.ErrInvalidStatusChange) {
		t.Fatalf("expected invalid status change after decision, got %v", err)
	}

	listed, err := module.Handler.ListByCampaignHandler(ctx, "brand-1", "brand", "camp-1")
	if err != nil {
		t.Fatalf("list by campaign failed: %v", err)
	}
	statuses := map[string]string{}
	for _, item := range listed.Items {
		statuses[item.CreatorID] = item.Status
	}
	if statuses["creator-1"] != string(entities.ApplicationStatusAccepted) {
		t.Fatalf("expected creator-1 accepted, got %s", statuses["creator-1"])
	}
	if statuses["creator-2"] != string(entities.ApplicationStatusRejected) {
		t.Fatalf("expected creator-2 rejected, got %s", statuses["creator-2"])
	}
}

func TestListByCampaignRequiresOwningBrand(t *testing.T) {
	module := openCampaignModule(t)
	ctx := context.Background()

	_, err := module.Handler.ListByCampaignHandler(ctx, "brand-other", "brand", "camp-1")
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized, got %v", err)
	}
	if _, err := module.Handler.ListByCampaignHandler(ctx, "anyone", "admin", "camp-1"); err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
}
