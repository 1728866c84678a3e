package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/repository"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TodoUpdate carries a partial update; nil fields are left untouched.
type TodoUpdate struct {
	Title     *string
	Completed *bool
}

// TodoService coordinates to-do CRUD. Records are stamped with the creator's
// user_id but reads and writes are not restricted to the creator.
type TodoService struct {
	todos      repository.TodoRepository
	dispatcher events.Dispatcher
}

// NewTodoService builds the service.
func NewTodoService(todos repository.TodoRepository, dispatcher events.Dispatcher) *TodoService {
	return &TodoService{todos: todos, dispatcher: dispatcher}
}

// Create stores a new to-do owned by the caller.
func (s *TodoService) Create(ctx context.Context, identity *domain.Identity, title string) (*domain.Todo, error) {
	todo := &domain.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		Completed: false,
		UserID:    identity.UserID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.EventTodoCreated, todo.ID, identity, events.TodoCreatedPayload{Title: title})
	return todo, nil
}

// List returns every to-do in the store sorted by id.
func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	todos, err := s.todos.List(ctx)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	return todos, nil
}

// Get fetches a single to-do by id.
func (s *TodoService) Get(ctx context.Context, id string) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return todo, nil
}

// Update applies a partial update and returns the updated record.
func (s *TodoService) Update(ctx context.Context, identity *domain.Identity, id string, update TodoUpdate) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	if update.Title != nil {
		todo.Title = *update.Title
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, mapStoreError(err)
	}

	eventType := events.EventTodoUpdated
	if update.Completed != nil && *update.Completed {
		eventType = events.EventTodoCompleted
	}
	s.publish(ctx, eventType, todo.ID, identity, events.TodoUpdatedPayload{
		Title:     update.Title,
		Completed: update.Completed,
	})
	return todo, nil
}

// Delete removes a to-do by id.
func (s *TodoService) Delete(ctx context.Context, identity *domain.Identity, id string) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.publish(ctx, events.EventTodoDeleted, id, identity, nil)
	return nil
}

func (s *TodoService) publish(ctx context.Context, eventType events.EventType, todoID string, identity *domain.Identity, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:     uuid.NewString(),
		Type:   eventType,
		TodoID: todoID,
		Actor: events.Actor{
			Username: identity.Username,
			UserID:   identity.UserID,
		},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("Todo")
	}
	return apperrors.NewStoreUnavailable(err)
}
