package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "eventmesh/contexts/mesh-core/documentation-service/application"
	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	domainerrors "eventmesh/contexts/mesh-core/documentation-service/domain/errors"
	"eventmesh/contexts/mesh-core/documentation-service/ports"
)

type GetEventUseCase struct {
	Events ports.EventRepository
	Logger *slog.Logger
}

func (uc GetEventUseCase) Execute(ctx context.Context, eventID string) (entities.DocumentableEvent, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return entities.DocumentableEvent{}, domainerrors.ErrInvalidEventInput
	}

	event, err := uc.Events.GetEvent(ctx, eventID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrEventNotFound) {
			application.ResolveLogger(uc.Logger).Error("event lookup failed",
				"event", "event_get_failed",
				"module", "mesh-core/documentation-service",
				"layer", "application",
				"operation", "get_event",
				"event_id", eventID,
				"error", err.Error(),
			)
		}
		return entities.DocumentableEvent{}, err
	}
	return event, nil
}

type GetNarrativeUseCase struct {
	Narratives ports.NarrativeRepository
	Logger     *slog.Logger
}

func (uc GetNarrativeUseCase) Execute(ctx context.Context, eventID string) (entities.NarrativeContext, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return entities.NarrativeContext{}, domainerrors.ErrInvalidNarrativeInput
	}

	record, err := uc.Narratives.GetNarrative(ctx, eventID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNarrativeNotFound) {
			application.ResolveLogger(uc.Logger).Error("narrative lookup failed",
				"event", "narrative_get_failed",
				"module", "mesh-core/documentation-service",
				"layer", "application",
				"operation", "get_narrative",
				"event_id", eventID,
				"error", err.Error(),
			)
		}
		return entities.NarrativeContext{}, err
	}
	return record, nil
}
