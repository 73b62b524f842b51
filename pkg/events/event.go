package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is what aggregates emit when a decision is made. The payload
// is already serialized so publishers never need to know the concrete type.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent carries the common event metadata. Concrete events embed it by
// value, so event values satisfy DomainEvent without pointer receivers.
type BaseEvent struct {
	id            uuid.UUID
	eventType     string
	aggregateID   uuid.UUID
	aggregateType string
	occurredAt    time.Time
	payload       []byte
}

// NewBaseEvent stamps an event with a fresh ID and the current UTC time.
func NewBaseEvent(eventType string, aggregateID uuid.UUID, aggregateType string, payload []byte) BaseEvent {
	return BaseEvent{
		id:            uuid.New(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    time.Now().UTC(),
		payload:       payload,
	}
}

// EventID returns the event's unique identifier.
func (e BaseEvent) EventID() uuid.UUID { return e.id }

// EventType returns the dotted event type name.
func (e BaseEvent) EventType() string { return e.eventType }

// AggregateID returns the ID of the aggregate that emitted the event.
func (e BaseEvent) AggregateID() uuid.UUID { return e.aggregateID }

// AggregateType returns the emitting aggregate's type name.
func (e BaseEvent) AggregateType() string { return e.aggregateType }

// OccurredAt returns when the event was recorded.
func (e BaseEvent) OccurredAt() time.Time { return e.occurredAt }

// Payload returns the serialized event body.
func (e BaseEvent) Payload() []byte { return e.payload }
