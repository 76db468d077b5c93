package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	application "eventmesh/contexts/mesh-core/documentation-service/application"
	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	domainerrors "eventmesh/contexts/mesh-core/documentation-service/domain/errors"
	"eventmesh/contexts/mesh-core/documentation-service/ports"
)

type PublishEventCommand struct {
	EventID        string
	EventName      string
	Source         string
	Timestamp      *int64
	Payload        json.RawMessage
	ShouldDocument *bool
	RelatedEvents  []string
	UserIntent     *entities.UserIntent
	Context        *entities.EventContext
	Metadata       *entities.EventMetadata
}

// PublishEventUseCase is the single creation path for documentable events.
// Events is the primary backend; Fallback, when wired, absorbs writes that
// the primary rejects so a publish never fails just because the durable
// store is unreachable.
type PublishEventUseCase struct {
	Events      ports.EventRepository
	Fallback    ports.EventRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc PublishEventUseCase) Execute(ctx context.Context, cmd PublishEventCommand) (entities.DocumentableEvent, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.EventName) == "" {
		return entities.DocumentableEvent{}, domainerrors.ErrInvalidEventInput
	}

	eventID := strings.TrimSpace(cmd.EventID)
	if eventID == "" {
		generated, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return entities.DocumentableEvent{}, err
		}
		eventID = generated
	}

	timestamp := uc.Clock.Now().UTC().UnixMilli()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	event := entities.DocumentableEvent{
		EventID:        eventID,
		EventName:      strings.TrimSpace(cmd.EventName),
		Source:         strings.TrimSpace(cmd.Source),
		Timestamp:      timestamp,
		Payload:        append(json.RawMessage(nil), cmd.Payload...),
		ShouldDocument: entities.AutoDocument(cmd.EventName, cmd.ShouldDocument),
		RelatedEvents:  append([]string(nil), cmd.RelatedEvents...),
	}
	if cmd.UserIntent != nil {
		intent := *cmd.UserIntent
		event.UserIntent = &intent
	}
	if cmd.Context != nil {
		eventContext := *cmd.Context
		eventContext.RelatedEvents = append([]string(nil), cmd.Context.RelatedEvents...)
		event.Context = &eventContext
	}
	if cmd.Metadata != nil {
		metadata := *cmd.Metadata
		event.Metadata = &metadata
	}

	if err := uc.Events.CreateEvent(ctx, event); err != nil {
		// A duplicate id is a caller conflict, not a store outage; the
		// fallback must never shadow an id the durable store already holds.
		if errors.Is(err, domainerrors.ErrDuplicateEventID) || uc.Fallback == nil {
			logger.Error("event publish failed",
				"event", "event_publish_failed",
				"module", "mesh-core/documentation-service",
				"layer", "application",
				"operation", "publish",
				"event_id", event.EventID,
				"error", err.Error(),
			)
			return entities.DocumentableEvent{}, err
		}
		logger.Warn("durable event store unavailable, writing to fallback store",
			"event", "event_store_degraded",
			"module", "mesh-core/documentation-service",
			"layer", "application",
			"operation", "publish",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		if fallbackErr := uc.Fallback.CreateEvent(ctx, event); fallbackErr != nil {
			logger.Error("fallback event write failed",
				"event", "event_publish_failed",
				"module", "mesh-core/documentation-service",
				"layer", "application",
				"operation", "publish",
				"event_id", event.EventID,
				"error", fallbackErr.Error(),
			)
			return entities.DocumentableEvent{}, fallbackErr
		}
	}

	logger.Info("documentable event published",
		"event", "documentable_event_published",
		"module", "mesh-core/documentation-service",
		"layer", "application",
		"event_id", event.EventID,
		"event_name", event.EventName,
		"should_document", event.ShouldDocument,
	)
	return event, nil
}
