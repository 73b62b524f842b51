package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nexuscommerce/decision-service/pkg/events"
	"github.com/nexuscommerce/decision-service/pkg/kafka"
)

// All decision events share one topic so consumers see them in order.
const decisionTopic = "nexus.decisions.v1"

// KafkaPublisher implements port.EventPublisher using the shared Kafka
// producer. Events are keyed by aggregate ID so all events for one decision
// land on the same partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a KafkaPublisher around the given producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

// Publish sends the given domain events to the decision topic.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: evt.Payload(),
			Headers: map[string]string{
				"event_id":       evt.EventID().String(),
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"occurred_at":    evt.OccurredAt().Format("2006-01-02T15:04:05.000Z07:00"),
			},
		})
	}

	if err := p.producer.Publish(ctx, decisionTopic, messages...); err != nil {
		return fmt.Errorf("failed to publish domain events: %w", err)
	}

	p.logger.Debug("published domain events",
		slog.Int("count", len(evts)),
		slog.String("topic", decisionTopic),
	)

	return nil
}
