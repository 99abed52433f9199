package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"medreg/pkg/kafka"
	"medreg/pkg/logger"
	"medreg/pkg/notify"
)

type mockSink struct {
	name     string
	sent     []Notification
	sendFunc func(ctx context.Context, n Notification) error
}

func (m *mockSink) Name() string {
	return m.name
}

func (m *mockSink) Send(ctx context.Context, n Notification) error {
	m.sent = append(m.sent, n)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, n)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:  "error",
		Format: logger.JSON,
		Output: io.Discard,
	})
}

func eventMessage(t *testing.T, event notify.Event) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return kafka.Message{
		Key:   "PAT-1",
		Value: value,
	}
}

func TestHandleDispatchesKnownEvent(t *testing.T) {
	sink := &mockSink{name: "test"}
	d := NewDispatcher(testLogger(), sink)

	msg := eventMessage(t, notify.Event{
		ID:         "evt-1",
		Type:       notify.EventPatientRegistered,
		Source:     "patients",
		OccurredAt: time.Now().UTC(),
		Payload:    map[string]string{"patient_id": "BR1234"},
	})

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sink.sent))
	}
	if sink.sent[0].Subject != "New patient registered" {
		t.Errorf("unexpected subject %q", sink.sent[0].Subject)
	}
	if sink.sent[0].Ref != "evt-1" {
		t.Errorf("unexpected ref %q", sink.sent[0].Ref)
	}
}

func TestHandleIgnoresUnknownEventType(t *testing.T) {
	sink := &mockSink{name: "test"}
	d := NewDispatcher(testLogger(), sink)

	msg := eventMessage(t, notify.Event{
		ID:   "evt-2",
		Type: "patient.archived",
	})

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("unknown event type must be acked, got %v", err)
	}
	if len(sink.sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(sink.sent))
	}
}

func TestHandleAcksUndecodablePayload(t *testing.T) {
	sink := &mockSink{name: "test"}
	d := NewDispatcher(testLogger(), sink)

	msg := kafka.Message{Key: "PAT-1", Value: []byte("not json")}

	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("undecodable payload must be acked, got %v", err)
	}
	if len(sink.sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(sink.sent))
	}
}

func TestHandleSurfacesSinkFailure(t *testing.T) {
	sink := &mockSink{
		name: "broken",
		sendFunc: func(_ context.Context, _ Notification) error {
			return errors.New("channel down")
		},
	}
	d := NewDispatcher(testLogger(), sink)

	msg := eventMessage(t, notify.Event{
		ID:   "evt-3",
		Type: notify.EventAppointmentBooked,
	})

	err := d.Handle(context.Background(), msg)
	if err == nil {
		t.Fatal("expected an error from the failing sink")
	}
}
