package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"medreg/pkg/kafka"
	"medreg/pkg/logger"
	"medreg/pkg/notify"
)

// Notification is the rendered message handed to every sink.
type Notification struct {
	Subject string
	Body    string
	Ref     string
}

// Sink delivers a rendered notification to one channel.
type Sink interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// Dispatcher decodes registry events and fans each one out to all sinks.
type Dispatcher struct {
	sinks []Sink
	log   *logger.Logger
}

func NewDispatcher(log *logger.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks: sinks,
		log:   log,
	}
}

// Handle is the consumer message handler. Undecodable payloads and
// unknown event types are acked without retry; a sink failure is
// surfaced so the consumer can retry or dead-letter the message.
func (d *Dispatcher) Handle(ctx context.Context, msg kafka.Message) error {
	var event notify.Event
	if err := msg.DecodeValue(&event); err != nil {
		d.log.Error("Dropping undecodable event",
			"key", msg.Key,
			"offset", msg.Offset,
			"error", err.Error())
		return nil
	}

	notification, ok := render(event)
	if !ok {
		d.log.Warn("Ignoring unknown event type", "event_type", event.Type, "event_id", event.ID)
		return nil
	}

	for _, sink := range d.sinks {
		if err := sink.Send(ctx, notification); err != nil {
			return fmt.Errorf("sink %s: %w", sink.Name(), err)
		}
	}

	d.log.Info("Event dispatched",
		"event_type", event.Type,
		"event_id", event.ID,
		"sinks", len(d.sinks))
	return nil
}

// render maps an event onto subject and body text. The payload is kept
// as raw JSON in the body so downstream channels can show the details.
func render(event notify.Event) (Notification, bool) {
	var subject string
	switch event.Type {
	case notify.EventPatientRegistered:
		subject = "New patient registered"
	case notify.EventPatientUpdated:
		subject = "Patient record updated"
	case notify.EventAppointmentBooked:
		subject = "Appointment booked"
	case notify.EventAppointmentCancelled:
		subject = "Appointment cancelled"
	case notify.EventImportCompleted:
		subject = "Workbook import completed"
	default:
		return Notification{}, false
	}

	body, err := json.Marshal(event.Payload)
	if err != nil {
		body = []byte("{}")
	}

	return Notification{
		Subject: subject,
		Body:    string(body),
		Ref:     event.ID,
	}, true
}
