package notificationservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisadapter "helvetia/contexts/engagement/notification-service/adapters/redis"
	"helvetia/contexts/engagement/notification-service/domain/entities"
	domainerrors "helvetia/contexts/engagement/notification-service/domain/errors"
	"helvetia/internal/shared/events"
)

func deliverIntent(t *testing.T, module Module, eventID string, intent events.NotificationIntent) {
	t.Helper()
	envelope, err := events.NewEnvelope(eventID, events.TypeNotificationRequested, "messaging-service", intent.UserID, time.Now().UTC(), intent)
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	if err := module.Consumer.Handle(context.Background(), envelope); err != nil {
		t.Fatalf("consume event %s: %v", eventID, err)
	}
}

func TestConsumerRecordsNotificationOncePerEvent(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	intent := events.NotificationIntent{
		UserID:     "creator-1",
		Category:   entities.CategoryMessage,
		Title:      "New message",
		Body:       "A brand wrote to you",
		EntityType: "conversation",
		EntityID:   "conv-1",
	}
	deliverIntent(t, module, "evt-1", intent)
	// Replay of the same event id must not create a second row.
	deliverIntent(t, module, "evt-1", intent)

	listed, err := module.Handler.ListNotificationsHandler(ctx, "creator-1", false, 0)
	if err != nil {
		t.Fatalf("list notifications failed: %v", err)
	}
	if len(listed.Items) != 1 {
		t.Fatalf("expected 1 notification after replay, got %d", len(listed.Items))
	}
	if listed.Items[0].Category != entities.CategoryMessage || listed.Items[0].IsRead {
		t.Fatalf("unexpected notification: %+v", listed.Items[0])
	}
}

func TestCountersBucketByCategory(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	deliverIntent(t, module, "evt-1", events.NotificationIntent{UserID: "u1", Category: entities.CategoryMessage, Title: "m1"})
	deliverIntent(t, module, "evt-2", events.NotificationIntent{UserID: "u1", Category: entities.CategoryMessage, Title: "m2"})
	deliverIntent(t, module, "evt-3", events.NotificationIntent{UserID: "u1", Category: entities.CategoryApplication, Title: "a1"})
	deliverIntent(t, module, "evt-4", events.NotificationIntent{UserID: "u1", Category: entities.CategoryDeliverable, Title: "d1"})
	// Workflow notifications count in the total only.
	deliverIntent(t, module, "evt-5", events.NotificationIntent{UserID: "u1", Category: entities.CategoryWorkflow, Title: "w1"})
	deliverIntent(t, module, "evt-6", events.NotificationIntent{UserID: "u2", Category: entities.CategoryMessage, Title: "other user"})

	counters, err := module.Handler.GetCountersHandler(ctx, "u1")
	if err != nil {
		t.Fatalf("get counters failed: %v", err)
	}
	if counters.Total != 5 || counters.Messages != 2 || counters.Applications != 1 || counters.Deliverables != 1 {
		t.Fatalf("unexpected counters: %+v", counters)
	}

	// Second read must come from the cache and agree with the first.
	cached, _, err := module.Cache.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("cache read failed: %v", err)
	}
	if cached.Total != 5 {
		t.Fatalf("expected cached total 5, got %d", cached.Total)
	}
}

func TestMarkReadRequiresOwnerAndDropsCount(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	deliverIntent(t, module, "evt-1", events.NotificationIntent{UserID: "u1", Category: entities.CategoryApplication, Title: "a1"})
	listed, err := module.Handler.ListNotificationsHandler(ctx, "u1", true, 0)
	if err != nil || len(listed.Items) != 1 {
		t.Fatalf("expected one unread notification, got %v %v", listed.Items, err)
	}
	notificationID := listed.Items[0].NotificationID

	if err := module.Handler.MarkReadHandler(ctx, "intruder", notificationID); !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected not authorized for foreign reader, got %v", err)
	}
	if err := module.Handler.MarkReadHandler(ctx, "u1", notificationID); err != nil {
		t.Fatalf("mark read failed: %v", err)
	}
	// Marking an already-read notification is a no-op.
	if err := module.Handler.MarkReadHandler(ctx, "u1", notificationID); err != nil {
		t.Fatalf("second mark read failed: %v", err)
	}

	counters, err := module.Handler.GetCountersHandler(ctx, "u1")
	if err != nil {
		t.Fatalf("get counters failed: %v", err)
	}
	if counters.Total != 0 || counters.Applications != 0 {
		t.Fatalf("expected zero counters after read, got %+v", counters)
	}

	unread, err := module.Handler.ListNotificationsHandler(ctx, "u1", true, 0)
	if err != nil {
		t.Fatalf("list unread failed: %v", err)
	}
	if len(unread.Items) != 0 {
		t.Fatalf("expected no unread notifications, got %d", len(unread.Items))
	}
}

func TestMarkAllReadZeroesCachedCountersImmediately(t *testing.T) {
	module := NewInMemoryModule(nil)
	ctx := context.Background()

	deliverIntent(t, module, "evt-1", events.NotificationIntent{UserID: "u1", Category: entities.CategoryMessage, Title: "m1"})
	deliverIntent(t, module, "evt-2", events.NotificationIntent{UserID: "u1", Category: entities.CategoryDeliverable, Title: "d1"})
	if _, err := module.Handler.GetCountersHandler(ctx, "u1"); err != nil {
		t.Fatalf("warm counters failed: %v", err)
	}

	resp, err := module.Handler.MarkAllReadHandler(ctx, "u1")
	if err != nil {
		t.Fatalf("mark all read failed: %v", err)
	}
	if resp.Updated != 2 {
		t.Fatalf("expected 2 updated, got %d", resp.Updated)
	}

	cached, hit, err := module.Cache.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("cache read failed: %v", err)
	}
	if !hit || cached.Total != 0 {
		t.Fatalf("expected zeroed cache entry, hit=%v counters=%+v", hit, cached)
	}

	counters, err := module.Handler.GetCountersHandler(ctx, "u1")
	if err != nil {
		t.Fatalf("get counters failed: %v", err)
	}
	if counters.Total != 0 || counters.Messages != 0 || counters.Deliverables != 0 {
		t.Fatalf("expected all counters zero, got %+v", counters)
	}
}

func TestRedisCounterCacheRoundTrip(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := redisadapter.NewCounterCache(client, time.Minute)
	ctx := context.Background()

	if _, hit, err := cache.Get(ctx, "u1"); err != nil || hit {
		t.Fatalf("expected miss on empty cache, hit=%v err=%v", hit, err)
	}

	want := entities.Counters{Total: 4, Messages: 2, Applications: 1, Deliverables: 1}
	if err := cache.Set(ctx, "u1", want); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, hit, err := cache.Get(ctx, "u1")
	if err != nil || !hit {
		t.Fatalf("expected hit, hit=%v err=%v", hit, err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if err := cache.Zero(ctx, "u1"); err != nil {
		t.Fatalf("zero failed: %v", err)
	}
	got, hit, err = cache.Get(ctx, "u1")
	if err != nil || !hit || got.Total != 0 {
		t.Fatalf("expected zeroed entry, hit=%v counters=%+v err=%v", hit, got, err)
	}

	if err := cache.Invalidate(ctx, "u1"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, hit, err := cache.Get(ctx, "u1"); err != nil || hit {
		t.Fatalf("expected miss after invalidate, hit=%v err=%v", hit, err)
	}
}
