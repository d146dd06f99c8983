package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frutbras-service/internal/models"
	"frutbras-service/internal/util"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ChangePublisher publishes row-level change notifications, one per mutation,
// keyed by table so consumers see each table's changes in order.
type ChangePublisher struct {
	producer *Producer
}

// NewChangePublisher creates a new change publisher
func NewChangePublisher(producer *Producer) *ChangePublisher {
	return &ChangePublisher{producer: producer}
}

// PublishTableChange publishes a TableChanged event for a row mutation.
// Old and new may be nil depending on the operation.
func (cp *ChangePublisher) PublishTableChange(ctx context.Context, table, operation, recordID string, old, new interface{}) error {
	event := &models.TableChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTableChanged,
			Timestamp: time.Now(),
		},
		Table:     table,
		Operation: operation,
		RecordID:  recordID,
	}

	var err error
	if old != nil {
		if event.Old, err = json.Marshal(old); err != nil {
			return fmt.Errorf("failed to marshal old row: %w", err)
		}
	}
	if new != nil {
		if event.New, err = json.Marshal(new); err != nil {
			return fmt.Errorf("failed to marshal new row: %w", err)
		}
	}

	if err := cp.producer.PublishEvent(ctx, table, event); err != nil {
		return err
	}

	util.ChangeEventsPublishedTotal.WithLabelValues(table, operation).Inc()
	return nil
}

// ChangeHandler routes incoming change-feed messages to a single callback
type ChangeHandler struct {
	onTableChanged func(context.Context, *models.TableChangedEvent) error
}

// NewChangeHandler creates a new change handler
func NewChangeHandler(onTableChanged func(context.Context, *models.TableChangedEvent) error) *ChangeHandler {
	return &ChangeHandler{onTableChanged: onTableChanged}
}

// HandleMessage decodes a change-feed message and dispatches it
func (ch *ChangeHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	if baseEvent.EventType != models.EventTypeTableChanged {
		return nil
	}

	var event models.TableChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal TableChanged event: %w", err)
	}

	util.ChangeEventsConsumedTotal.WithLabelValues(event.Table, event.Operation).Inc()

	if ch.onTableChanged != nil {
		return ch.onTableChanged(ctx, &event)
	}
	return nil
}
