package worker

import (
	"context"
	"log"

	"frutbras-service/internal/broker"
	"frutbras-service/internal/models"
	"frutbras-service/internal/realtime"
)

// ChangeFeedWorker pumps row-change messages from the feed into the realtime
// listener, which invalidates caches and raises notifications.
type ChangeFeedWorker struct {
	consumer      *broker.Consumer
	changeHandler *broker.ChangeHandler
}

// NewChangeFeedWorker creates a worker feeding the given listener
func NewChangeFeedWorker(consumer *broker.Consumer, listener *realtime.Listener) *ChangeFeedWorker {
	changeHandler := broker.NewChangeHandler(func(ctx context.Context, event *models.TableChangedEvent) error {
		listener.Dispatch(ctx, event)
		return nil
	})

	return &ChangeFeedWorker{
		consumer:      consumer,
		changeHandler: changeHandler,
	}
}

// Start starts the worker
func (w *ChangeFeedWorker) Start(ctx context.Context) error {
	log.Println("Starting change feed worker...")
	return w.consumer.StartConsuming(ctx, w.changeHandler.HandleMessage)
}

// Stop stops the worker
func (w *ChangeFeedWorker) Stop() error {
	log.Println("Stopping change feed worker...")
	return w.consumer.Close()
}
