package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventmesh/contexts/mesh-core/documentation-service/adapters/memory"
	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	domainerrors "eventmesh/contexts/mesh-core/documentation-service/domain/errors"
	"eventmesh/contexts/mesh-core/documentation-service/ports"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type fixedIDGenerator struct {
	id string
}

func (g fixedIDGenerator) NewID(_ context.Context) (string, error) {
	return g.id, nil
}

// failingEventRepository simulates an unreachable durable backend.
type failingEventRepository struct {
	err error
}

func (r failingEventRepository) CreateEvent(_ context.Context, _ entities.DocumentableEvent) error {
	return r.err
}

func (r failingEventRepository) GetEvent(_ context.Context, _ string) (entities.DocumentableEvent, error) {
	return entities.DocumentableEvent{}, r.err
}

func (r failingEventRepository) ListEvents(_ context.Context, _ ports.EventFilter) ([]entities.DocumentableEvent, error) {
	return nil, r.err
}

func (r failingEventRepository) UpdateEvent(_ context.Context, _ entities.DocumentableEvent) error {
	return r.err
}

func TestPublishEventAssignsIDAndTimestamp(t *testing.T) {
	store := memory.NewStore(nil)
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	useCase := PublishEventUseCase{
		Events:      store,
		Clock:       fixedClock{now: now},
		IDGenerator: fixedIDGenerator{id: "generated-id"},
	}

	event, err := useCase.Execute(context.Background(), PublishEventCommand{EventName: "widget.created"})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if event.EventID != "generated-id" {
		t.Fatalf("expected generated id, got %q", event.EventID)
	}
	if event.Timestamp != now.UnixMilli() {
		t.Fatalf("expected clock timestamp %d, got %d", now.UnixMilli(), event.Timestamp)
	}

	stored, err := store.GetEvent(context.Background(), "generated-id")
	if err != nil {
		t.Fatalf("event not persisted: %v", err)
	}
	if stored.EventName != "widget.created" {
		t.Fatalf("unexpected stored event: %+v", stored)
	}
}

func TestPublishEventKeepsCallerSuppliedIDAndTimestamp(t *testing.T) {
	store := memory.NewStore(nil)
	timestamp := int64(1700000000000)
	useCase := PublishEventUseCase{
		Events:      store,
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "never-used"},
	}

	event, err := useCase.Execute(context.Background(), PublishEventCommand{
		EventID:   "caller-id",
		EventName: "widget.created",
		Timestamp: &timestamp,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if event.EventID != "caller-id" || event.Timestamp != timestamp {
		t.Fatalf("caller-supplied identity overridden: %+v", event)
	}
}

func TestPublishEventRejectsMissingName(t *testing.T) {
	useCase := PublishEventUseCase{
		Events:      memory.NewStore(nil),
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "id"},
	}

	_, err := useCase.Execute(context.Background(), PublishEventCommand{EventName: "  "})
	if !errors.Is(err, domainerrors.ErrInvalidEventInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestPublishEventAutoMarksKnownNames(t *testing.T) {
	store := memory.NewStore(nil)
	useCase := PublishEventUseCase{
		Events:      store,
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "id-1"},
	}

	marked, err := useCase.Execute(context.Background(), PublishEventCommand{
		EventID:   "marked",
		EventName: "automation.triggered",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if !marked.ShouldDocument {
		t.Fatalf("automation.triggered should be auto-marked documentable")
	}

	unmarked, err := useCase.Execute(context.Background(), PublishEventCommand{
		EventID:   "unmarked",
		EventName: "heartbeat.tick",
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if unmarked.ShouldDocument {
		t.Fatalf("heartbeat.tick should not be auto-marked documentable")
	}
}

func TestPublishEventExplicitFlagOverridesClassifier(t *testing.T) {
	store := memory.NewStore(nil)
	useCase := PublishEventUseCase{
		Events:      store,
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "id-1"},
	}

	explicit := false
	event, err := useCase.Execute(context.Background(), PublishEventCommand{
		EventID:        "opted-out",
		EventName:      "widget.created",
		ShouldDocument: &explicit,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if event.ShouldDocument {
		t.Fatalf("explicit shouldDocument=false must win over the classifier")
	}
}

func TestPublishEventDegradesToFallbackStore(t *testing.T) {
	fallback := memory.NewStore(nil)
	useCase := PublishEventUseCase{
		Events:      failingEventRepository{err: errors.New("connection refused")},
		Fallback:    fallback,
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "degraded-id"},
	}

	event, err := useCase.Execute(context.Background(), PublishEventCommand{EventName: "widget.created"})
	if err != nil {
		t.Fatalf("publish should degrade, not fail: %v", err)
	}

	stored, err := fallback.GetEvent(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("event missing from fallback store: %v", err)
	}
	if stored.EventName != "widget.created" {
		t.Fatalf("unexpected fallback record: %+v", stored)
	}
}

func TestPublishEventDuplicateIDNeverDegrades(t *testing.T) {
	primary := memory.NewStore([]entities.DocumentableEvent{{
		EventID:   "evt-1",
		EventName: "widget.created",
	}})
	fallback := memory.NewStore(nil)
	useCase := PublishEventUseCase{
		Events:      primary,
		Fallback:    fallback,
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "never-used"},
	}

	_, err := useCase.Execute(context.Background(), PublishEventCommand{
		EventID:   "evt-1",
		EventName: "provider.connected",
	})
	if !errors.Is(err, domainerrors.ErrDuplicateEventID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
	if _, err := fallback.GetEvent(context.Background(), "evt-1"); !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("duplicate id must not be written to the fallback store, got %v", err)
	}
	stored, err := primary.GetEvent(context.Background(), "evt-1")
	if err != nil {
		t.Fatalf("original event lost: %v", err)
	}
	if stored.EventName != "widget.created" {
		t.Fatalf("original event overwritten: %+v", stored)
	}
}

func TestPublishEventFailsWithoutFallback(t *testing.T) {
	writeErr := errors.New("connection refused")
	useCase := PublishEventUseCase{
		Events:      failingEventRepository{err: writeErr},
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "id-1"},
	}

	_, err := useCase.Execute(context.Background(), PublishEventCommand{EventName: "widget.created"})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected the primary write error, got %v", err)
	}
}

func TestPublishEventCopiesMutableInput(t *testing.T) {
	store := memory.NewStore(nil)
	useCase := PublishEventUseCase{
		Events:      store,
		Clock:       fixedClock{now: time.Now()},
		IDGenerator: fixedIDGenerator{id: "id-1"},
	}

	related := []string{"evt-2"}
	event, err := useCase.Execute(context.Background(), PublishEventCommand{
		EventID:       "evt-1",
		EventName:     "widget.created",
		RelatedEvents: related,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	related[0] = "mutated"
	if event.RelatedEvents[0] != "evt-2" {
		t.Fatalf("published event aliases caller slice")
	}
}
