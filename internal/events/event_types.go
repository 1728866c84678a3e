package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTodoCreated   EventType = "todo_created"
	EventTodoUpdated   EventType = "todo_updated"
	EventTodoCompleted EventType = "todo_completed"
	EventTodoDeleted   EventType = "todo_deleted"
)

// Actor identifies the authenticated caller behind an event.
type Actor struct {
	Username string `json:"username"`
	UserID   string `json:"user_id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TodoID    string      `json:"todo_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TodoCreatedPayload payload.
type TodoCreatedPayload struct {
	Title string `json:"title"`
}

// TodoUpdatedPayload payload.
type TodoUpdatedPayload struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
