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

type SaveNarrativeCommand struct {
	EventID string
	Patch   ports.NarrativePatch
}

// SaveNarrativeUseCase upserts supplementary narrative content keyed by
// event id. The first write for an event id sets CreatedAt; every write
// bumps UpdatedAt and replaces only the fields present in the patch.
type SaveNarrativeUseCase struct {
	Narratives  ports.NarrativeRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SaveNarrativeUseCase) Execute(ctx context.Context, cmd SaveNarrativeCommand) (entities.NarrativeContext, error) {
	logger := application.ResolveLogger(uc.Logger)
	eventID := strings.TrimSpace(cmd.EventID)
	if eventID == "" {
		return entities.NarrativeContext{}, domainerrors.ErrInvalidNarrativeInput
	}

	now := uc.Clock.Now().UTC()
	record, err := uc.Narratives.GetNarrative(ctx, eventID)
	if errors.Is(err, domainerrors.ErrNarrativeNotFound) {
		narrativeID, idErr := uc.IDGenerator.NewID(ctx)
		if idErr != nil {
			return entities.NarrativeContext{}, idErr
		}
		record = entities.NarrativeContext{
			NarrativeID: narrativeID,
			EventID:     eventID,
			CreatedAt:   now,
		}
	} else if err != nil {
		logger.Error("narrative lookup failed",
			"event", "narrative_save_failed",
			"module", "mesh-core/documentation-service",
			"layer", "application",
			"operation", "save_narrative",
			"event_id", eventID,
			"error", err.Error(),
		)
		return entities.NarrativeContext{}, err
	}

	applyNarrativePatch(&record, cmd.Patch)
	record.UpdatedAt = now

	if err := uc.Narratives.PutNarrative(ctx, record); err != nil {
		logger.Error("narrative write failed",
			"event", "narrative_save_failed",
			"module", "mesh-core/documentation-service",
			"layer", "application",
			"operation", "save_narrative",
			"event_id", eventID,
			"error", err.Error(),
		)
		return entities.NarrativeContext{}, err
	}

	logger.Info("narrative context saved",
		"event", "narrative_context_saved",
		"module", "mesh-core/documentation-service",
		"layer", "application",
		"event_id", eventID,
		"narrative_id", record.NarrativeID,
	)
	return record, nil
}

func applyNarrativePatch(record *entities.NarrativeContext, patch ports.NarrativePatch) {
	if patch.LongDescription != nil {
		record.LongDescription = *patch.LongDescription
	}
	if patch.Screenshots != nil {
		record.Screenshots = append([]string(nil), (*patch.Screenshots)...)
	}
	if patch.CodeSnippets != nil {
		record.CodeSnippets = append([]entities.CodeSnippet(nil), (*patch.CodeSnippets)...)
	}
	if patch.RelatedDocs != nil {
		record.RelatedDocs = append([]string(nil), (*patch.RelatedDocs)...)
	}
	if patch.AINarrative != nil {
		record.AINarrative = *patch.AINarrative
	}
	if patch.AISummary != nil {
		record.AISummary = *patch.AISummary
	}
	if patch.AITags != nil {
		record.AITags = append([]string(nil), (*patch.AITags)...)
	}
}
