package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of analysis events
type EventType string

const (
	// Emitted when a quiz's response set is assembled for an admin view
	EventResponsesViewed EventType = "responses.viewed"
	// Emitted when a quiz's graded results are exported to a workbook
	EventResponsesExported EventType = "responses.exported"
)

// AnalysisEvent is the base event structure published to the analysis topic
type AnalysisEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// ResponsesViewedEvent is the payload for EventResponsesViewed
type ResponsesViewedEvent struct {
	QuizToken     string    `json:"quiz_token"`
	ResponseCount int       `json:"response_count"`
	ViewedAt      time.Time `json:"viewed_at"`
}

// ResponsesExportedEvent is the payload for EventResponsesExported
type ResponsesExportedEvent struct {
	QuizToken     string    `json:"quiz_token"`
	ResponseCount int       `json:"response_count"`
	ExportedAt    time.Time `json:"exported_at"`
}

const (
	eventSource  = "quiz-analysis-service"
	eventVersion = "1.0"
)

func newAnalysisEvent(eventType EventType, data interface{}) *AnalysisEvent {
	return &AnalysisEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// NewResponsesViewedEvent builds the event for a served response listing
func NewResponsesViewedEvent(token string, responseCount int) *AnalysisEvent {
	return newAnalysisEvent(EventResponsesViewed, ResponsesViewedEvent{
		QuizToken:     token,
		ResponseCount: responseCount,
		ViewedAt:      time.Now().UTC(),
	})
}

// NewResponsesExportedEvent builds the event for a completed export
func NewResponsesExportedEvent(token string, responseCount int) *AnalysisEvent {
	return newAnalysisEvent(EventResponsesExported, ResponsesExportedEvent{
		QuizToken:     token,
		ResponseCount: responseCount,
		ExportedAt:    time.Now().UTC(),
	})
}
