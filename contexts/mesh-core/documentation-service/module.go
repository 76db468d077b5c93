package documentationservice

import (
	"log/slog"

	httpadapter "eventmesh/contexts/mesh-core/documentation-service/adapters/http"
	"eventmesh/contexts/mesh-core/documentation-service/adapters/memory"
	"eventmesh/contexts/mesh-core/documentation-service/application/commands"
	"eventmesh/contexts/mesh-core/documentation-service/application/queries"
	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	"eventmesh/contexts/mesh-core/documentation-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Events      ports.EventRepository
	Fallback    ports.EventRepository
	Narratives  ports.NarrativeRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	publishEvent := commands.PublishEventUseCase{
		Events:      deps.Events,
		Fallback:    deps.Fallback,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	updateOutcome := commands.UpdateOutcomeUseCase{
		Events:   deps.Events,
		Fallback: deps.Fallback,
		Logger:   deps.Logger,
	}
	saveNarrative := commands.SaveNarrativeUseCase{
		Narratives:  deps.Narratives,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	eventHistory := queries.EventHistoryUseCase{
		Events: deps.Events,
		Logger: deps.Logger,
	}
	getEvent := queries.GetEventUseCase{
		Events: deps.Events,
		Logger: deps.Logger,
	}
	getNarrative := queries.GetNarrativeUseCase{
		Narratives: deps.Narratives,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			PublishEvent:  publishEvent,
			UpdateOutcome: updateOutcome,
			SaveNarrative: saveNarrative,
			EventHistory:  eventHistory,
			GetEvent:      getEvent,
			GetNarrative:  getNarrative,
			Logger:        deps.Logger,
		},
	}
}

// NewInMemoryModule wires every port to a fresh in-memory store. Used by
// tests and by bootstrap when no durable backend is reachable.
func NewInMemoryModule(seed []entities.DocumentableEvent, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Events:      store,
		Narratives:  store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
