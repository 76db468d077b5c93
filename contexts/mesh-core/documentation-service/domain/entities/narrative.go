package entities

import "time"

type CodeSnippet struct {
	Language string
	Code     string
}

// NarrativeContext is optional rich supplementary content attached to an
// event, stored separately so high-frequency event writes never pay the
// cost of large blobs. Records are upserted by event id: CreatedAt is set
// once at first write, UpdatedAt on every write.
type NarrativeContext struct {
	NarrativeID     string
	EventID         string
	LongDescription string
	Screenshots     []string
	CodeSnippets    []CodeSnippet
	RelatedDocs     []string
	AINarrative     string
	AISummary       string
	AITags          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
