package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"eventmesh/contexts/mesh-core/documentation-service/application/commands"
	"eventmesh/contexts/mesh-core/documentation-service/application/queries"
	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	"eventmesh/contexts/mesh-core/documentation-service/ports"
	httptransport "eventmesh/contexts/mesh-core/documentation-service/transport/http"
)

type Handler struct {
	PublishEvent  commands.PublishEventUseCase
	UpdateOutcome commands.UpdateOutcomeUseCase
	SaveNarrative commands.SaveNarrativeUseCase
	EventHistory  queries.EventHistoryUseCase
	GetEvent      queries.GetEventUseCase
	GetNarrative  queries.GetNarrativeUseCase
	Logger        *slog.Logger
}

// PublishEventHandler godoc
// @Summary Publish a documentable event
// @Description Persists a state-changing action with optional rationale and causal links. Id and timestamp are generated when absent; shouldDocument is auto-classified when not supplied.
// @Tags event-mesh
// @Accept json
// @Produce json
// @Param request body httptransport.PublishEventRequest true "Event payload"
// @Success 200 {object} httptransport.EventDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/mesh/v1/events [post]
func (h Handler) PublishEventHandler(ctx context.Context, req httptransport.PublishEventRequest) (httptransport.EventDTO, error) {
	cmd := commands.PublishEventCommand{
		EventID:        req.ID,
		EventName:      req.EventName,
		Source:         req.Source,
		Timestamp:      req.Timestamp,
		Payload:        req.Payload,
		ShouldDocument: req.ShouldDocument,
		RelatedEvents:  append([]string(nil), req.RelatedEvents...),
		UserIntent:     intentFromDTO(req.UserIntent),
		Context:        contextFromDTO(req.Context),
		Metadata:       metadataFromDTO(req.Metadata),
	}
	event, err := h.PublishEvent.Execute(ctx, cmd)
	if err != nil {
		return httptransport.EventDTO{}, err
	}
	return mapEvent(event), nil
}

// EventHistoryHandler godoc
// @Summary Query event history
// @Description Flat filtered scan ordered by timestamp, or a bounded breadth-first walk over related-event links when event_id and include_related are set.
// @Tags event-mesh
// @Accept json
// @Produce json
// @Param event_name query string false "Exact event name"
// @Param source query string false "Exact source"
// @Param user_id query string false "Metadata user id"
// @Param session_id query string false "Metadata session id"
// @Param start_time query int false "Inclusive lower timestamp bound (epoch ms)"
// @Param end_time query int false "Inclusive upper timestamp bound (epoch ms)"
// @Param event_id query string false "Traversal seed event id"
// @Param include_related query bool false "Enable graph traversal from event_id"
// @Param max_depth query int false "Traversal depth limit, 1 or greater (default 5)"
// @Success 200 {array} httptransport.EventDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/mesh/v1/events/history [get]
func (h Handler) EventHistoryHandler(ctx context.Context, query queries.EventHistoryQuery) ([]httptransport.EventDTO, error) {
	items, err := h.EventHistory.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	result := make([]httptransport.EventDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapEvent(item))
	}
	return result, nil
}

// GetEventHandler godoc
// @Summary Get one event
// @Tags event-mesh
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.EventDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/mesh/v1/events/{event_id} [get]
func (h Handler) GetEventHandler(ctx context.Context, eventID string) (httptransport.EventDTO, error) {
	event, err := h.GetEvent.Execute(ctx, eventID)
	if err != nil {
		return httptransport.EventDTO{}, err
	}
	return mapEvent(event), nil
}

// UpdateOutcomeHandler godoc
// @Summary Backfill an event outcome
// @Description The one sanctioned post-publish mutation: records what actually happened, and optionally the observed impact metric.
// @Tags event-mesh
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param request body httptransport.UpdateOutcomeRequest true "Outcome payload"
// @Success 200 {object} httptransport.EventDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/mesh/v1/events/{event_id}/outcome [post]
func (h Handler) UpdateOutcomeHandler(ctx context.Context, eventID string, req httptransport.UpdateOutcomeRequest) (httptransport.EventDTO, error) {
	event, err := h.UpdateOutcome.Execute(ctx, commands.UpdateOutcomeCommand{
		EventID:      eventID,
		Outcome:      req.Outcome,
		ImpactMetric: req.ImpactMetric,
	})
	if err != nil {
		return httptransport.EventDTO{}, err
	}
	return mapEvent(event), nil
}

// SaveNarrativeHandler godoc
// @Summary Upsert narrative context for an event
// @Description First write sets createdAt; every write bumps updatedAt and replaces only the provided fields.
// @Tags event-mesh
// @Accept json
// @Produce json
// @Param event_id path string true "Event id"
// @Param request body httptransport.SaveNarrativeRequest true "Narrative fields"
// @Success 200 {object} httptransport.NarrativeDTO
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/mesh/v1/events/{event_id}/narrative [put]
func (h Handler) SaveNarrativeHandler(ctx context.Context, eventID string, req httptransport.SaveNarrativeRequest) (httptransport.NarrativeDTO, error) {
	record, err := h.SaveNarrative.Execute(ctx, commands.SaveNarrativeCommand{
		EventID: eventID,
		Patch:   narrativePatchFromDTO(req),
	})
	if err != nil {
		return httptransport.NarrativeDTO{}, err
	}
	return mapNarrative(record), nil
}

// GetNarrativeHandler godoc
// @Summary Get narrative context for an event
// @Tags event-mesh
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.NarrativeDTO
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/mesh/v1/events/{event_id}/narrative [get]
func (h Handler) GetNarrativeHandler(ctx context.Context, eventID string) (httptransport.NarrativeDTO, error) {
	record, err := h.GetNarrative.Execute(ctx, eventID)
	if err != nil {
		return httptransport.NarrativeDTO{}, err
	}
	return mapNarrative(record), nil
}

func intentFromDTO(dto *httptransport.UserIntentDTO) *entities.UserIntent {
	if dto == nil {
		return nil
	}
	return &entities.UserIntent{
		ProblemSolved:   dto.ProblemSolved,
		PainPoint:       dto.PainPoint,
		Goal:            dto.Goal,
		ExpectedOutcome: dto.ExpectedOutcome,
		ImpactMetric:    dto.ImpactMetric,
	}
}

func contextFromDTO(dto *httptransport.EventContextDTO) *entities.EventContext {
	if dto == nil {
		return nil
	}
	return &entities.EventContext{
		Decision:      dto.Decision,
		Outcome:       dto.Outcome,
		RelatedEvents: append([]string(nil), dto.RelatedEvents...),
		Category:      dto.Category,
	}
}

func metadataFromDTO(dto *httptransport.EventMetadataDTO) *entities.EventMetadata {
	if dto == nil {
		return nil
	}
	return &entities.EventMetadata{
		UserID:      dto.UserID,
		SessionID:   dto.SessionID,
		Environment: dto.Environment,
	}
}

func narrativePatchFromDTO(req httptransport.SaveNarrativeRequest) ports.NarrativePatch {
	patch := ports.NarrativePatch{
		LongDescription: req.LongDescription,
		Screenshots:     req.Screenshots,
		RelatedDocs:     req.RelatedDocs,
		AINarrative:     req.AINarrative,
		AISummary:       req.AISummary,
		AITags:          req.AITags,
	}
	if req.CodeSnippets != nil {
		snippets := make([]entities.CodeSnippet, 0, len(*req.CodeSnippets))
		for _, dto := range *req.CodeSnippets {
			snippets = append(snippets, entities.CodeSnippet{Language: dto.Language, Code: dto.Code})
		}
		patch.CodeSnippets = &snippets
	}
	return patch
}

func mapEvent(event entities.DocumentableEvent) httptransport.EventDTO {
	dto := httptransport.EventDTO{
		ID:             event.EventID,
		EventName:      event.EventName,
		Source:         event.Source,
		Timestamp:      event.Timestamp,
		Payload:        event.Payload,
		ShouldDocument: event.ShouldDocument,
		RelatedEvents:  append([]string(nil), event.RelatedEvents...),
	}
	if event.UserIntent != nil {
		dto.UserIntent = &httptransport.UserIntentDTO{
			ProblemSolved:   event.UserIntent.ProblemSolved,
			PainPoint:       event.UserIntent.PainPoint,
			Goal:            event.UserIntent.Goal,
			ExpectedOutcome: event.UserIntent.ExpectedOutcome,
			ImpactMetric:    event.UserIntent.ImpactMetric,
		}
	}
	if event.Context != nil {
		dto.Context = &httptransport.EventContextDTO{
			Decision:      event.Context.Decision,
			Outcome:       event.Context.Outcome,
			RelatedEvents: append([]string(nil), event.Context.RelatedEvents...),
			Category:      event.Context.Category,
		}
	}
	if event.Metadata != nil {
		dto.Metadata = &httptransport.EventMetadataDTO{
			UserID:      event.Metadata.UserID,
			SessionID:   event.Metadata.SessionID,
			Environment: event.Metadata.Environment,
		}
	}
	return dto
}

func mapNarrative(record entities.NarrativeContext) httptransport.NarrativeDTO {
	snippets := make([]httptransport.CodeSnippetDTO, 0, len(record.CodeSnippets))
	for _, snippet := range record.CodeSnippets {
		snippets = append(snippets, httptransport.CodeSnippetDTO{
			Language: snippet.Language,
			Code:     snippet.Code,
		})
	}
	return httptransport.NarrativeDTO{
		ID:              record.NarrativeID,
		EventID:         record.EventID,
		LongDescription: record.LongDescription,
		Screenshots:     append([]string(nil), record.Screenshots...),
		CodeSnippets:    snippets,
		RelatedDocs:     append([]string(nil), record.RelatedDocs...),
		AINarrative:     record.AINarrative,
		AISummary:       record.AISummary,
		AITags:          append([]string(nil), record.AITags...),
		CreatedAt:       record.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       record.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
