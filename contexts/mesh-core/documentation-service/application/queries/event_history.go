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

// DefaultMaxDepth bounds graph traversal when the caller does not supply a
// depth limit.
const DefaultMaxDepth = 5

type EventHistoryQuery struct {
	EventName string
	Source    string
	UserID    string
	SessionID string
	StartTime *int64
	EndTime   *int64

	// EventID plus IncludeRelated switches the query into graph-traversal
	// mode: a breadth-first walk over outgoing event links seeded at
	// EventID, bounded by MaxDepth hops.
	EventID        string
	IncludeRelated bool
	MaxDepth       int
}

type EventHistoryUseCase struct {
	Events ports.EventRepository
	Logger *slog.Logger
}

func (uc EventHistoryUseCase) Execute(ctx context.Context, query EventHistoryQuery) ([]entities.DocumentableEvent, error) {
	logger := application.ResolveLogger(uc.Logger)
	filter := ports.EventFilter{
		EventName: strings.TrimSpace(query.EventName),
		Source:    strings.TrimSpace(query.Source),
		UserID:    strings.TrimSpace(query.UserID),
		SessionID: strings.TrimSpace(query.SessionID),
		StartTime: query.StartTime,
		EndTime:   query.EndTime,
	}

	seed := strings.TrimSpace(query.EventID)
	if !query.IncludeRelated || seed == "" {
		items, err := uc.Events.ListEvents(ctx, filter)
		if err != nil {
			logger.Error("event history scan failed",
				"event", "event_history_failed",
				"module", "mesh-core/documentation-service",
				"layer", "application",
				"operation", "event_history",
				"error", err.Error(),
			)
			return nil, err
		}
		logger.Info("event history scanned",
			"event", "event_history_scanned",
			"module", "mesh-core/documentation-service",
			"layer", "application",
			"count", len(items),
		)
		return items, nil
	}

	items, err := uc.traverse(ctx, seed, query.MaxDepth, filter)
	if err != nil {
		logger.Error("event graph traversal failed",
			"event", "event_history_failed",
			"module", "mesh-core/documentation-service",
			"layer", "application",
			"operation", "event_traversal",
			"event_id", seed,
			"error", err.Error(),
		)
		return nil, err
	}
	logger.Info("event graph traversed",
		"event", "event_graph_traversed",
		"module", "mesh-core/documentation-service",
		"layer", "application",
		"event_id", seed,
		"count", len(items),
	)
	return items, nil
}

// traverse walks outgoing links breadth-first from the seed. A global
// visited set guarantees termination on cyclic link data, and ids that do
// not resolve to a stored event are skipped rather than treated as errors.
// Results keep BFS discovery order so a reconstructed workflow reads in
// causal order rather than raw insertion time.
func (uc EventHistoryUseCase) traverse(
	ctx context.Context,
	seed string,
	maxDepth int,
	filter ports.EventFilter,
) ([]entities.DocumentableEvent, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	visited := map[string]struct{}{seed: {}}
	discovered := make([]entities.DocumentableEvent, 0)
	frontier := []string{seed}

	for depth := 0; len(frontier) > 0; depth++ {
		next := make([]string, 0)
		for _, eventID := range frontier {
			event, err := uc.Events.GetEvent(ctx, eventID)
			if errors.Is(err, domainerrors.ErrEventNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			discovered = append(discovered, event)
			if depth >= maxDepth {
				continue
			}
			for _, link := range event.OutgoingLinks() {
				if _, seen := visited[link]; seen {
					continue
				}
				visited[link] = struct{}{}
				next = append(next, link)
			}
		}
		frontier = next
	}

	results := make([]entities.DocumentableEvent, 0, len(discovered))
	for _, event := range discovered {
		if filter.Matches(event) {
			results = append(results, event)
		}
	}
	return results, nil
}
