package kafka_test

import (
	"context"
	"regexp"
	"testing"

	"go-ems/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return db, mock
}

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     "REQ-1",
		AggregateType: "employee",
		AggregateID:   uuid.NewString(),
		EventType:     "employee_created",
		Topic:         "ems.employee.lifecycle.v1",
		Payload:       []byte(`{"employee_id":"1"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestOutboxRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts pending row", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := kafka.NewOutboxRepository(db)
		event := validEvent()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, event.RequestID, event.AggregateType, event.AggregateID,
				event.EventType, event.Topic, event.Payload, event.Status).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid event never reaches the database", func(t *testing.T) {
		db, mock := newGormMock(t)
		repo := kafka.NewOutboxRepository(db)
		event := validEvent()
		event.Payload = nil

		err := repo.Create(ctx, event)

		assert.EqualError(t, err, "outbox payload is required")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock := newGormMock(t)
	repo := kafka.NewOutboxRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs(kafka.OutboxStatusFailed, "broker down", "evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkFailed(context.Background(), "evt-1", "broker down"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateOutboxEvent(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *kafka.OutboxEvent)
		wantErr string
	}{
		{name: "valid", mutate: func(e *kafka.OutboxEvent) {}},
		{name: "missing id", mutate: func(e *kafka.OutboxEvent) { e.ID = "" }, wantErr: "outbox id is required"},
		{name: "missing aggregate", mutate: func(e *kafka.OutboxEvent) { e.AggregateID = "" }, wantErr: "outbox aggregate id is required"},
		{name: "missing topic", mutate: func(e *kafka.OutboxEvent) { e.Topic = "" }, wantErr: "outbox topic is required"},
		{name: "unknown status", mutate: func(e *kafka.OutboxEvent) { e.Status = "done" }, wantErr: "invalid outbox status: done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEvent()
			tt.mutate(&e)

			err := kafka.ValidateOutboxEvent(e)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
