package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/todo-service/internal/api/dto"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/domain"
	"github.com/spec-kit/todo-service/internal/service"
	apperrors "github.com/spec-kit/todo-service/pkg/util"
)

// TodosHandler exposes to-do CRUD endpoints. All routes sit behind the auth
// middleware.
type TodosHandler struct {
	todos *service.TodoService
}

// NewTodosHandler constructs handler.
func NewTodosHandler(todoService *service.TodoService) *TodosHandler {
	return &TodosHandler{todos: todoService}
}

// List handles GET /api/todos.
func (h *TodosHandler) List(c *fiber.Ctx) error {
	todos, err := h.todos.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoListResponse(todos))
}

// Create handles POST /api/todos.
func (h *TodosHandler) Create(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}

	todo, err := h.todos.Create(c.UserContext(), identity, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoResponse(*todo))
}

// Get handles GET /api/todos/:id.
func (h *TodosHandler) Get(c *fiber.Ctx) error {
	todo, err := h.todos.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoResponse(*todo))
}

// Update handles PUT /api/todos/:id.
func (h *TodosHandler) Update(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	todo, err := h.todos.Update(c.UserContext(), identity, c.Params("id"), service.TodoUpdate{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTodoResponse(*todo))
}

// Delete handles DELETE /api/todos/:id.
func (h *TodosHandler) Delete(c *fiber.Ctx) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	if err := h.todos.Delete(c.UserContext(), identity, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Todo deleted successfully"})
}

func requireIdentity(c *fiber.Ctx) (*domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("invalid authentication credentials")
	}
	return identity, nil
}
