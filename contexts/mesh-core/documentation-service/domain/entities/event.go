package entities

import (
	"encoding/json"
	"strings"
)

// UserIntent is the free-text rationale captured when an event is published.
// ImpactMetric is the only field that may change after persistence.
type UserIntent struct {
	ProblemSolved   string
	PainPoint       string
	Goal            string
	ExpectedOutcome string
	ImpactMetric    string
}

// EventContext carries causal/workflow metadata. Outcome is the only field
// that may change after persistence. RelatedEvents are directed outgoing
// links to other event ids; the store does not guarantee they resolve.
type EventContext struct {
	Decision      string
	Outcome       string
	RelatedEvents []string
	Category      string
}

type EventMetadata struct {
	UserID      string
	SessionID   string
	Environment string
}

// DocumentableEvent is a persisted record of a state-changing action,
// annotated with optional rationale and causal links. Payload is opaque
// provider-defined JSON and is stored as-is. RelatedEvents at the top level
// is the legacy link field kept for events published before links moved
// under Context.
type DocumentableEvent struct {
	EventID        string
	EventName      string
	Source         string
	Timestamp      int64
	Payload        json.RawMessage
	ShouldDocument bool
	RelatedEvents  []string
	UserIntent     *UserIntent
	Context        *EventContext
	Metadata       *EventMetadata
}

// OutgoingLinks returns the deduplicated union of the legacy top-level link
// list and Context.RelatedEvents. Self-links and blank ids are dropped.
func (e DocumentableEvent) OutgoingLinks() []string {
	seen := make(map[string]struct{})
	links := make([]string, 0)
	collect := func(ids []string) {
		for _, id := range ids {
			id = strings.TrimSpace(id)
			if id == "" || id == e.EventID {
				continue
			}
			if _, exists := seen[id]; exists {
				continue
			}
			seen[id] = struct{}{}
			links = append(links, id)
		}
	}
	collect(e.RelatedEvents)
	if e.Context != nil {
		collect(e.Context.RelatedEvents)
	}
	return links
}

var autoDocumentedEvents = map[string]struct{}{
	"widget.created":       {},
	"provider.connected":   {},
	"automation.triggered": {},
	"workflow.completed":   {},
	"error.occurred":       {},
}

// AutoDocument decides whether an event belongs to the documentable corpus.
// An explicit caller flag wins; otherwise the event name must be on the
// curated allow-list of meaningful state transitions.
func AutoDocument(eventName string, explicit *bool) bool {
	if explicit != nil {
		return *explicit
	}
	_, listed := autoDocumentedEvents[strings.TrimSpace(eventName)]
	return listed
}
