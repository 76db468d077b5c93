package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"eventmesh/contexts/mesh-core/documentation-service/domain/entities"
	domainerrors "eventmesh/contexts/mesh-core/documentation-service/domain/errors"
	"eventmesh/contexts/mesh-core/documentation-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the durable backend for events and narrative contexts.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateEvent(ctx context.Context, event entities.DocumentableEvent) error {
	row, err := eventModelFromEntity(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateEventID
		}
		r.logger.Error("event insert failed",
			"event", "event_store_write_failed",
			"module", "mesh-core/documentation-service",
			"layer", "adapter",
			"operation", "create_event",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (entities.DocumentableEvent, error) {
	var row eventModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.DocumentableEvent{}, domainerrors.ErrEventNotFound
		}
		return entities.DocumentableEvent{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListEvents(ctx context.Context, filter ports.EventFilter) ([]entities.DocumentableEvent, error) {
	tx := r.db.WithContext(ctx).Model(&eventModel{})
	if name := strings.TrimSpace(filter.EventName); name != "" {
		tx = tx.Where("event_name = ?", name)
	}
	if source := strings.TrimSpace(filter.Source); source != "" {
		tx = tx.Where("source = ?", source)
	}
	if userID := strings.TrimSpace(filter.UserID); userID != "" {
		tx = tx.Where("user_id = ?", userID)
	}
	if sessionID := strings.TrimSpace(filter.SessionID); sessionID != "" {
		tx = tx.Where("session_id = ?", sessionID)
	}
	if filter.StartTime != nil {
		tx = tx.Where("timestamp_ms >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		tx = tx.Where("timestamp_ms <= ?", *filter.EndTime)
	}

	var rows []eventModel
	if err := tx.Order("timestamp_ms ASC, seq ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]entities.DocumentableEvent, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateEvent writes back only the sanctioned mutable documents: the
// context block (outcome) and the user-intent block (impact metric). All
// other columns are write-once at publish time.
func (r *Repository) UpdateEvent(ctx context.Context, event entities.DocumentableEvent) error {
	contextDoc, err := marshalEventContext(event.Context)
	if err != nil {
		return err
	}
	intentDoc, err := marshalUserIntent(event.UserIntent)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("event_id = ?", strings.TrimSpace(event.EventID)).
		Updates(map[string]any{
			"context":     contextDoc,
			"user_intent": intentDoc,
		})
	if result.Error != nil {
		r.logger.Error("event update failed",
			"event", "event_store_write_failed",
			"module", "mesh-core/documentation-service",
			"layer", "adapter",
			"operation", "update_event",
			"event_id", event.EventID,
			"error", result.Error.Error(),
		)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrEventNotFound
	}
	return nil
}

func (r *Repository) GetNarrative(ctx context.Context, eventID string) (entities.NarrativeContext, error) {
	var row narrativeModel
	err := r.db.WithContext(ctx).
		Where("event_id = ?", strings.TrimSpace(eventID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.NarrativeContext{}, domainerrors.ErrNarrativeNotFound
		}
		return entities.NarrativeContext{}, err
	}
	return row.toEntity()
}

func (r *Repository) PutNarrative(ctx context.Context, record entities.NarrativeContext) error {
	row, err := narrativeModelFromEntity(record)
	if err != nil {
		return err
	}
	// Upsert on event_id: narrative_id and created_at stay from the first
	// write, everything else follows the latest save.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"long_description",
				"screenshots",
				"code_snippets",
				"related_docs",
				"ai_narrative",
				"ai_summary",
				"ai_tags",
				"updated_at",
			}),
		}).
		Create(&row).
		Error
	if err != nil {
		r.logger.Error("narrative upsert failed",
			"event", "event_store_write_failed",
			"module", "mesh-core/documentation-service",
			"layer", "adapter",
			"operation", "put_narrative",
			"event_id", record.EventID,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

type eventModel struct {
	EventID        string    `gorm:"column:event_id;primaryKey"`
	Seq            int64     `gorm:"column:seq;->"`
	EventName      string    `gorm:"column:event_name"`
	Source         string    `gorm:"column:source"`
	TimestampMS    int64     `gorm:"column:timestamp_ms"`
	Payload        []byte    `gorm:"column:payload;type:jsonb"`
	ShouldDocument bool      `gorm:"column:should_document"`
	RelatedEvents  []string  `gorm:"column:related_events;type:text[]"`
	UserIntent     []byte    `gorm:"column:user_intent;type:jsonb"`
	Context        []byte    `gorm:"column:context;type:jsonb"`
	UserID         string    `gorm:"column:user_id"`
	SessionID      string    `gorm:"column:session_id"`
	Environment    string    `gorm:"column:environment"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (eventModel) TableName() string {
	return "documentable_events"
}

type userIntentDoc struct {
	ProblemSolved   string `json:"problemSolved"`
	PainPoint       string `json:"painPoint"`
	Goal            string `json:"goal"`
	ExpectedOutcome string `json:"expectedOutcome"`
	ImpactMetric    string `json:"impactMetric,omitempty"`
}

type eventContextDoc struct {
	Decision      string   `json:"decision,omitempty"`
	Outcome       string   `json:"outcome,omitempty"`
	RelatedEvents []string `json:"relatedEvents,omitempty"`
	Category      string   `json:"category,omitempty"`
}

func marshalUserIntent(intent *entities.UserIntent) ([]byte, error) {
	if intent == nil {
		return nil, nil
	}
	return json.Marshal(userIntentDoc{
		ProblemSolved:   intent.ProblemSolved,
		PainPoint:       intent.PainPoint,
		Goal:            intent.Goal,
		ExpectedOutcome: intent.ExpectedOutcome,
		ImpactMetric:    intent.ImpactMetric,
	})
}

func marshalEventContext(eventContext *entities.EventContext) ([]byte, error) {
	if eventContext == nil {
		return nil, nil
	}
	return json.Marshal(eventContextDoc{
		Decision:      eventContext.Decision,
		Outcome:       eventContext.Outcome,
		RelatedEvents: append([]string(nil), eventContext.RelatedEvents...),
		Category:      eventContext.Category,
	})
}

func eventModelFromEntity(event entities.DocumentableEvent) (eventModel, error) {
	intentDoc, err := marshalUserIntent(event.UserIntent)
	if err != nil {
		return eventModel{}, err
	}
	contextDoc, err := marshalEventContext(event.Context)
	if err != nil {
		return eventModel{}, err
	}

	row := eventModel{
		EventID:        strings.TrimSpace(event.EventID),
		EventName:      strings.TrimSpace(event.EventName),
		Source:         strings.TrimSpace(event.Source),
		TimestampMS:    event.Timestamp,
		Payload:        append([]byte(nil), event.Payload...),
		ShouldDocument: event.ShouldDocument,
		RelatedEvents:  copyOrEmpty(event.RelatedEvents),
		UserIntent:     intentDoc,
		Context:        contextDoc,
		CreatedAt:      time.Now().UTC(),
	}
	if event.Metadata != nil {
		row.UserID = strings.TrimSpace(event.Metadata.UserID)
		row.SessionID = strings.TrimSpace(event.Metadata.SessionID)
		row.Environment = strings.TrimSpace(event.Metadata.Environment)
	}
	return row, nil
}

func (m eventModel) toEntity() (entities.DocumentableEvent, error) {
	event := entities.DocumentableEvent{
		EventID:        m.EventID,
		EventName:      m.EventName,
		Source:         m.Source,
		Timestamp:      m.TimestampMS,
		Payload:        append(json.RawMessage(nil), m.Payload...),
		ShouldDocument: m.ShouldDocument,
		RelatedEvents:  append([]string(nil), m.RelatedEvents...),
	}
	if len(m.UserIntent) > 0 {
		var doc userIntentDoc
		if err := json.Unmarshal(m.UserIntent, &doc); err != nil {
			return entities.DocumentableEvent{}, err
		}
		event.UserIntent = &entities.UserIntent{
			ProblemSolved:   doc.ProblemSolved,
			PainPoint:       doc.PainPoint,
			Goal:            doc.Goal,
			ExpectedOutcome: doc.ExpectedOutcome,
			ImpactMetric:    doc.ImpactMetric,
		}
	}
	if len(m.Context) > 0 {
		var doc eventContextDoc
		if err := json.Unmarshal(m.Context, &doc); err != nil {
			return entities.DocumentableEvent{}, err
		}
		event.Context = &entities.EventContext{
			Decision:      doc.Decision,
			Outcome:       doc.Outcome,
			RelatedEvents: append([]string(nil), doc.RelatedEvents...),
			Category:      doc.Category,
		}
	}
	if m.UserID != "" || m.SessionID != "" || m.Environment != "" {
		event.Metadata = &entities.EventMetadata{
			UserID:      m.UserID,
			SessionID:   m.SessionID,
			Environment: m.Environment,
		}
	}
	return event, nil
}

type narrativeModel struct {
	NarrativeID     string    `gorm:"column:narrative_id;primaryKey"`
	EventID         string    `gorm:"column:event_id;uniqueIndex"`
	LongDescription string    `gorm:"column:long_description"`
	Screenshots     []string  `gorm:"column:screenshots;type:text[]"`
	CodeSnippets    []byte    `gorm:"column:code_snippets;type:jsonb"`
	RelatedDocs     []string  `gorm:"column:related_docs;type:text[]"`
	AINarrative     string    `gorm:"column:ai_narrative"`
	AISummary       string    `gorm:"column:ai_summary"`
	AITags          []string  `gorm:"column:ai_tags;type:text[]"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (narrativeModel) TableName() string {
	return "narrative_contexts"
}

type codeSnippetDoc struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

func narrativeModelFromEntity(record entities.NarrativeContext) (narrativeModel, error) {
	var snippets []byte
	if len(record.CodeSnippets) > 0 {
		docs := make([]codeSnippetDoc, 0, len(record.CodeSnippets))
		for _, snippet := range record.CodeSnippets {
			docs = append(docs, codeSnippetDoc{Language: snippet.Language, Code: snippet.Code})
		}
		serialized, err := json.Marshal(docs)
		if err != nil {
			return narrativeModel{}, err
		}
		snippets = serialized
	}
	return narrativeModel{
		NarrativeID:     strings.TrimSpace(record.NarrativeID),
		EventID:         strings.TrimSpace(record.EventID),
		LongDescription: record.LongDescription,
		Screenshots:     copyOrEmpty(record.Screenshots),
		CodeSnippets:    snippets,
		RelatedDocs:     copyOrEmpty(record.RelatedDocs),
		AINarrative:     record.AINarrative,
		AISummary:       record.AISummary,
		AITags:          copyOrEmpty(record.AITags),
		CreatedAt:       record.CreatedAt.UTC(),
		UpdatedAt:       record.UpdatedAt.UTC(),
	}, nil
}

func (m narrativeModel) toEntity() (entities.NarrativeContext, error) {
	record := entities.NarrativeContext{
		NarrativeID:     m.NarrativeID,
		EventID:         m.EventID,
		LongDescription: m.LongDescription,
		Screenshots:     append([]string(nil), m.Screenshots...),
		RelatedDocs:     append([]string(nil), m.RelatedDocs...),
		AINarrative:     m.AINarrative,
		AISummary:       m.AISummary,
		AITags:          append([]string(nil), m.AITags...),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
	if len(m.CodeSnippets) > 0 {
		var docs []codeSnippetDoc
		if err := json.Unmarshal(m.CodeSnippets, &docs); err != nil {
			return entities.NarrativeContext{}, err
		}
		snippets := make([]entities.CodeSnippet, 0, len(docs))
		for _, doc := range docs {
			snippets = append(snippets, entities.CodeSnippet{Language: doc.Language, Code: doc.Code})
		}
		record.CodeSnippets = snippets
	}
	return record, nil
}

func copyOrEmpty(items []string) []string {
	if len(items) == 0 {
		return []string{}
	}
	return append([]string(nil), items...)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
