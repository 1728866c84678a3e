package dto

import "github.com/spec-kit/todo-service/internal/domain"

// CreateTodoRequest payload for new to-dos.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// UpdateTodoRequest payload for partial updates; omitted fields stay as-is.
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// TodoResponse is the wire shape of a to-do item.
type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    string `json:"user_id,omitempty"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewTodoResponse maps a domain record to its wire shape.
func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		UserID:    todo.UserID,
	}
}

// NewTodoListResponse maps a slice of records.
func NewTodoListResponse(todos []domain.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		out = append(out, NewTodoResponse(todo))
	}
	return out
}
