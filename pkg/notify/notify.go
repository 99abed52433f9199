package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medreg/pkg/kafka"
	"medreg/pkg/logger"
)

// Domain event types published on the events topic
const (
	EventPatientRegistered    = "patient.registered"
	EventPatientUpdated       = "patient.updated"
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventImportCompleted      = "import.completed"
)

const schemaVersion = "1"

// Event is the envelope written to the events topic. Payload carries the
// event-type specific body.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Source     string    `json:"source"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// Publisher wraps the Kafka producer with the event envelope. A nil
// Publisher is valid and drops all events, so services can disable
// eventing without guarding every call site.
type Publisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewPublisher(producer *kafka.Producer, source string, log *logger.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

// Publish builds the envelope and writes it keyed on the given entity key.
// Errors are logged but not returned; event delivery must never fail the
// originating request.
func (p *Publisher) Publish(ctx context.Context, eventType string, key string, payload any) {
	if p == nil || p.producer == nil {
		return
	}

	event := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Source:     p.source,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(event).
		WithHeader(kafka.HeaderEventID, event.ID).
		WithHeader(kafka.HeaderEventType, eventType).
		WithHeader(kafka.HeaderSchemaVersion, schemaVersion).
		WithHeader(kafka.HeaderSource, p.source).
		WithHeader(kafka.HeaderTimestamp, fmt.Sprintf("%d", event.OccurredAt.Unix())).
		Build()
	if err != nil {
		p.log.Error("Failed to build event message", "event_type", eventType, "key", key, "error", err)
		return
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish event", "event_type", eventType, "key", key, "error", err)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
