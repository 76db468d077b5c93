package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Field names follow the external wire contract: entity fields are
// camelCase, event timestamps are Unix epoch milliseconds, narrative
// timestamps are RFC-3339 strings.

type UserIntentDTO struct {
	ProblemSolved   string `json:"problemSolved"`
	PainPoint       string `json:"painPoint"`
	Goal            string `json:"goal"`
	ExpectedOutcome string `json:"expectedOutcome"`
	ImpactMetric    string `json:"impactMetric,omitempty"`
}

type EventContextDTO struct {
	Decision      string   `json:"decision,omitempty"`
	Outcome       string   `json:"outcome,omitempty"`
	RelatedEvents []string `json:"relatedEvents,omitempty"`
	Category      string   `json:"category,omitempty"`
}

type EventMetadataDTO struct {
	UserID      string `json:"userId"`
	SessionID   string `json:"sessionId"`
	Environment string `json:"environment"`
}

type PublishEventRequest struct {
	ID             string            `json:"id,omitempty"`
	EventName      string            `json:"eventName"`
	Source         string            `json:"source"`
	Timestamp      *int64            `json:"timestamp,omitempty"`
	Payload        json.RawMessage   `json:"payload,omitempty"`
	ShouldDocument *bool             `json:"shouldDocument,omitempty"`
	RelatedEvents  []string          `json:"relatedEvents,omitempty"`
	UserIntent     *UserIntentDTO    `json:"userIntent,omitempty"`
	Context        *EventContextDTO  `json:"context,omitempty"`
	Metadata       *EventMetadataDTO `json:"metadata,omitempty"`
}

type EventDTO struct {
	ID             string            `json:"id"`
	EventName      string            `json:"eventName"`
	Source         string            `json:"source"`
	Timestamp      int64             `json:"timestamp"`
	Payload        json.RawMessage   `json:"payload"`
	ShouldDocument bool              `json:"shouldDocument"`
	RelatedEvents  []string          `json:"relatedEvents,omitempty"`
	UserIntent     *UserIntentDTO    `json:"userIntent,omitempty"`
	Context        *EventContextDTO  `json:"context,omitempty"`
	Metadata       *EventMetadataDTO `json:"metadata,omitempty"`
}

type UpdateOutcomeRequest struct {
	Outcome      string `json:"outcome"`
	ImpactMetric string `json:"impactMetric,omitempty"`
}

type CodeSnippetDTO struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type SaveNarrativeRequest struct {
	LongDescription *string           `json:"longDescription"`
	Screenshots     *[]string         `json:"screenshots"`
	CodeSnippets    *[]CodeSnippetDTO `json:"codeSnippets"`
	RelatedDocs     *[]string         `json:"relatedDocs"`
	AINarrative     *string           `json:"aiNarrative"`
	AISummary       *string           `json:"aiSummary"`
	AITags          *[]string         `json:"aiTags"`
}

type NarrativeDTO struct {
	ID              string           `json:"id"`
	EventID         string           `json:"eventId"`
	LongDescription string           `json:"longDescription,omitempty"`
	Screenshots     []string         `json:"screenshots,omitempty"`
	CodeSnippets    []CodeSnippetDTO `json:"codeSnippets,omitempty"`
	RelatedDocs     []string         `json:"relatedDocs,omitempty"`
	AINarrative     string           `json:"aiNarrative,omitempty"`
	AISummary       string           `json:"aiSummary,omitempty"`
	AITags          []string         `json:"aiTags,omitempty"`
	CreatedAt       string           `json:"createdAt"`
	UpdatedAt       string           `json:"updatedAt"`
}
