package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	domainerrors "eventmesh/contexts/mesh-core/documentation-service/domain/errors"
	"eventmesh/contexts/mesh-core/documentation-service/ports"

	"github.com/google/uuid"
)

// Store is the in-memory event and narrative backend. It implements the
// same ports as the postgres adapter and doubles as Clock and IDGenerator
// for in-memory wiring.
type Store struct {
	mu sync.RWMutex

	events     map[string]entities.DocumentableEvent
	order      []string
	narratives map[string]entities.NarrativeContext
}

var (
	globalOnce sync.Once
	global     *Store
)

// Global returns the process-wide fallback store. It is initialized once
// per process and survives everything short of a restart; Reset is the only
// way to clear it.
func Global() *Store {
	globalOnce.Do(func() {
		global = NewStore(nil)
	})
	return global
}

func NewStore(seed []entities.DocumentableEvent) *Store {
	store := &Store{
		events:     make(map[string]entities.DocumentableEvent, len(seed)),
		order:      make([]string, 0, len(seed)),
		narratives: make(map[string]entities.NarrativeContext),
	}
	for _, event := range seed {
		store.events[event.EventID] = cloneEvent(event)
		store.order = append(store.order, event.EventID)
	}
	return store
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = make(map[string]entities.DocumentableEvent)
	s.order = s.order[:0]
	s.narratives = make(map[string]entities.NarrativeContext)
}

func (s *Store) CreateEvent(_ context.Context, event entities.DocumentableEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.EventID]; exists {
		return domainerrors.ErrDuplicateEventID
	}
	s.events[event.EventID] = cloneEvent(event)
	s.order = append(s.order, event.EventID)
	return nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (entities.DocumentableEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, exists := s.events[strings.TrimSpace(eventID)]
	if !exists {
		return entities.DocumentableEvent{}, domainerrors.ErrEventNotFound
	}
	return cloneEvent(event), nil
}

func (s *Store) ListEvents(_ context.Context, filter ports.EventFilter) ([]entities.DocumentableEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.DocumentableEvent, 0)
	for _, eventID := range s.order {
		event := s.events[eventID]
		if filter.Matches(event) {
			items = append(items, cloneEvent(event))
		}
	}
	// Stable sort keeps insertion order as the timestamp tiebreak.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp < items[j].Timestamp
	})
	return items, nil
}

func (s *Store) UpdateEvent(_ context.Context, event entities.DocumentableEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.EventID]; !exists {
		return domainerrors.ErrEventNotFound
	}
	s.events[event.EventID] = cloneEvent(event)
	return nil
}

func (s *Store) GetNarrative(_ context.Context, eventID string) (entities.NarrativeContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.narratives[strings.TrimSpace(eventID)]
	if !exists {
		return entities.NarrativeContext{}, domainerrors.ErrNarrativeNotFound
	}
	return cloneNarrative(record), nil
}

func (s *Store) PutNarrative(_ context.Context, record entities.NarrativeContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.narratives[record.EventID] = cloneNarrative(record)
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneEvent(event entities.DocumentableEvent) entities.DocumentableEvent {
	cloned := event
	cloned.Payload = append(json.RawMessage(nil), event.Payload...)
	cloned.RelatedEvents = append([]string(nil), event.RelatedEvents...)
	if event.UserIntent != nil {
		intent := *event.UserIntent
		cloned.UserIntent = &intent
	}
	if event.Context != nil {
		eventContext := *event.Context
		eventContext.RelatedEvents = append([]string(nil), event.Context.RelatedEvents...)
		cloned.Context = &eventContext
	}
	if event.Metadata != nil {
		metadata := *event.Metadata
		cloned.Metadata = &metadata
	}
	return cloned
}

func cloneNarrative(record entities.NarrativeContext) entities.NarrativeContext {
	cloned := record
	cloned.Screenshots = append([]string(nil), record.Screenshots...)
	cloned.CodeSnippets = append([]entities.CodeSnippet(nil), record.CodeSnippets...)
	cloned.RelatedDocs = append([]string(nil), record.RelatedDocs...)
	cloned.AITags = append([]string(nil), record.AITags...)
	return cloned
}
