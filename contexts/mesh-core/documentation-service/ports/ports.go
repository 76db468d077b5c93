package ports

import (
	"context"
	"strings"
	"time"

	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
)

// EventFilter narrows event reads. All fields are optional and conjunctive.
// StartTime/EndTime are inclusive bounds on the event timestamp in Unix
// epoch milliseconds.
type EventFilter struct {
	EventName string
	Source    string
	UserID    string
	SessionID string
	StartTime *int64
	EndTime   *int64
}

func (f EventFilter) Matches(event entities.DocumentableEvent) bool {
	if name := strings.TrimSpace(f.EventName); name != "" && event.EventName != name {
		return false
	}
	if source := strings.TrimSpace(f.Source); source != "" && event.Source != source {
		return false
	}
	if userID := strings.TrimSpace(f.UserID); userID != "" {
		if event.Metadata == nil || event.Metadata.UserID != userID {
			return false
		}
	}
	if sessionID := strings.TrimSpace(f.SessionID); sessionID != "" {
		if event.Metadata == nil || event.Metadata.SessionID != sessionID {
			return false
		}
	}
	if f.StartTime != nil && event.Timestamp < *f.StartTime {
		return false
	}
	if f.EndTime != nil && event.Timestamp > *f.EndTime {
		return false
	}
	return true
}

// EventRepository is the event store contract. ListEvents returns matches
// ordered ascending by timestamp, ties broken by insertion order.
// UpdateEvent persists only the sanctioned mutable fields (context outcome
// and user-intent impact metric).
type EventRepository interface {
	CreateEvent(ctx context.Context, event entities.DocumentableEvent) error
	GetEvent(ctx context.Context, eventID string) (entities.DocumentableEvent, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]entities.DocumentableEvent, error)
	UpdateEvent(ctx context.Context, event entities.DocumentableEvent) error
}

// NarrativePatch is a partial update: nil fields keep their prior value.
type NarrativePatch struct {
	LongDescription *string
	Screenshots     *[]string
	CodeSnippets    *[]entities.CodeSnippet
	RelatedDocs     *[]string
	AINarrative     *string
	AISummary       *string
	AITags          *[]string
}

// NarrativeRepository stores narrative contexts keyed by event id.
// PutNarrative has upsert semantics on the event id.
type NarrativeRepository interface {
	GetNarrative(ctx context.Context, eventID string) (entities.NarrativeContext, error)
	PutNarrative(ctx context.Context, record entities.NarrativeContext) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
