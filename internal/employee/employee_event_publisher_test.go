package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-ems/internal/employee"
	"go-ems/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	msgs []kafkago.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestKafkaEventPublisher_PublishEmployeeCreated(t *testing.T) {
	event := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedEventType,
		EmployeeID: "e-1",
		Email:      "a@x.com",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	t.Run("keys the message by employee id", func(t *testing.T) {
		w := &recordingWriter{}

		err := employee.NewKafkaEventPublisher(w).PublishEmployeeCreated(context.Background(), event)

		assert.NoError(t, err)
		assert.Len(t, w.msgs, 1)
		msg := w.msgs[0]
		assert.Equal(t, events.EmployeeCreatedTopic, msg.Topic)
		assert.Equal(t, "e-1", string(msg.Key))

		var body map[string]any
		assert.NoError(t, json.Unmarshal(msg.Value, &body))
		assert.Equal(t, "e-1", body["employee_id"])
		assert.Equal(t, "a@x.com", body["email"])
		assert.Equal(t, "Ada", body["first_name"])
		assert.Equal(t, "Lovelace", body["last_name"])
		assert.NotContains(t, body, "request_id")
	})

	t.Run("returns writer errors", func(t *testing.T) {
		w := &recordingWriter{err: errors.New("leader not available")}

		err := employee.NewKafkaEventPublisher(w).PublishEmployeeCreated(context.Background(), event)

		assert.Error(t, err)
	})
}

func TestNoopEventPublisher(t *testing.T) {
	assert.NoError(t, employee.NewNoopEventPublisher().PublishEmployeeCreated(context.Background(), events.EmployeeCreatedEvent{}))
}
