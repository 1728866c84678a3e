package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/events"
)

// StartAuditWorker subscribes an audit-logging handler to every todo lifecycle
// event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("todo event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("todo_id", event.TodoID),
			zap.String("actor", event.Actor.Username),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventTodoCreated,
		events.EventTodoUpdated,
		events.EventTodoCompleted,
		events.EventTodoDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
