package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventPublisher defines the interface for publishing analysis events
type EventPublisher interface {
	PublishAnalysisEvent(ctx context.Context, event *AnalysisEvent) error
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Watermill with Kafka
type KafkaEventPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// NewKafkaEventPublisher creates a new Kafka-based event publisher using Watermill
func NewKafkaEventPublisher(config PublisherConfig) (*KafkaEventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &KafkaEventPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// PublishAnalysisEvent publishes an analysis event to Kafka
func (p *KafkaEventPublisher) PublishAnalysisEvent(ctx context.Context, event *AnalysisEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish analysis event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish analysis event: %w", err)
	}

	p.logger.Info("Published analysis event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *KafkaEventPublisher) Close() error {
	return p.publisher.Close()
}

// NoopEventPublisher is used when no brokers are configured
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishAnalysisEvent(ctx context.Context, event *AnalysisEvent) error {
	return nil
}

func (NoopEventPublisher) Close() error { return nil }

// MockEventPublisher is a mock implementation for testing
type MockEventPublisher struct {
	Events []AnalysisEvent
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]AnalysisEvent, 0),
		Logger: logger,
	}
}

// PublishAnalysisEvent stores the event in memory (for testing)
func (m *MockEventPublisher) PublishAnalysisEvent(ctx context.Context, event *AnalysisEvent) error {
	m.Events = append(m.Events, *event)
	if m.Logger != nil {
		m.Logger.Info("Mock: Published analysis event",
			"event_id", event.ID,
			"event_type", event.Type)
	}
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}
