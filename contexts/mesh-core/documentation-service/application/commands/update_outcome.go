package commands

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

type UpdateOutcomeCommand struct {
	EventID      string
	Outcome      string
	ImpactMetric string
}

// UpdateOutcomeUseCase is the one sanctioned post-publish mutation path.
// It backfills context.outcome and, when the event carries a user intent,
// the intent's impact metric. The update is last-write-wins and is applied
// through whichever backend currently holds the event.
type UpdateOutcomeUseCase struct {
	Events   ports.EventRepository
	Fallback ports.EventRepository
	Logger   *slog.Logger
}

func (uc UpdateOutcomeUseCase) Execute(ctx context.Context, cmd UpdateOutcomeCommand) (entities.DocumentableEvent, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	if eventID == "" {
		return entities.DocumentableEvent{}, domainerrors.ErrInvalidEventInput
	}

	repo := uc.Events
	event, err := repo.GetEvent(ctx, eventID)
	if errors.Is(err, domainerrors.ErrEventNotFound) && uc.Fallback != nil {
		repo = uc.Fallback
		event, err = repo.GetEvent(ctx, eventID)
	}
	if err != nil {
		if !errors.Is(err, domainerrors.ErrEventNotFound) {
			logger.Error("event lookup for outcome update failed",
				"event", "event_outcome_update_failed",
				"module", "mesh-core/documentation-service",
				"layer", "application",
				"operation", "update_outcome",
				"event_id", eventID,
				"error", err.Error(),
			)
		}
		return entities.DocumentableEvent{}, err
	}

	updated := event
	eventContext := entities.EventContext{}
	if event.Context != nil {
		eventContext = *event.Context
	}
	eventContext.Outcome = cmd.Outcome
	updated.Context = &eventContext

	// Impact metric is a refinement of the rationale captured at publish
	// time; an event published without a user intent stays without one.
	if strings.TrimSpace(cmd.ImpactMetric) != "" && event.UserIntent != nil {
		intent := *event.UserIntent
		intent.ImpactMetric = cmd.ImpactMetric
		updated.UserIntent = &intent
	}

	if err := repo.UpdateEvent(ctx, updated); err != nil {
		logger.Error("event outcome update failed",
			"event", "event_outcome_update_failed",
			"module", "mesh-core/documentation-service",
			"layer", "application",
			"operation", "update_outcome",
			"event_id", eventID,
			"error", err.Error(),
		)
		return entities.DocumentableEvent{}, err
	}

	logger.Info("event outcome updated",
		"event", "event_outcome_updated",
		"module", "mesh-core/documentation-service",
		"layer", "application",
		"event_id", eventID,
	)
	return updated, nil
}
