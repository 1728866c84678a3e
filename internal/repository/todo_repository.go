package repository

import (
	"context"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/todo-service/internal/domain"
)

const todoKeyPrefix = "todo:"

const (
	fieldTodoID        = "id"
	fieldTodoTitle     = "title"
	fieldTodoCompleted = "completed"
	fieldTodoUserID    = "user_id"
)

// TodoRepository encapsulates to-do persistence. Records carry the creator's
// user_id but access is intentionally not restricted by it: List returns every
// record in the store and Get/Update/Delete operate on any id.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) error
	Get(ctx context.Context, id string) (*domain.Todo, error)
	List(ctx context.Context) ([]domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id string) error
}

type todoRepository struct {
	client *redis.Client
}

// NewTodoRepository returns a Redis-backed implementation.
func NewTodoRepository(client *redis.Client) TodoRepository {
	return &todoRepository{client: client}
}

func (r *todoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	return r.client.HSet(ctx, todoKey(todo.ID), todoHash(todo)).Err()
}

func (r *todoRepository) Get(ctx context.Context, id string) (*domain.Todo, error) {
	data, err := r.client.HGetAll(ctx, todoKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	todo := todoFromHash(data)
	return &todo, nil
}

func (r *todoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	iter := r.client.Scan(ctx, 0, todoKeyPrefix+"*", 0).Iterator()

	todos := []domain.Todo{}
	for iter.Next(ctx) {
		data, err := r.client.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			// key expired or deleted between scan and read
			continue
		}
		todos = append(todos, todoFromHash(data))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	sort.Slice(todos, func(i, j int) bool { return todos[i].ID < todos[j].ID })
	return todos, nil
}

func (r *todoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	n, err := r.client.Exists(ctx, todoKey(todo.ID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return r.client.HSet(ctx, todoKey(todo.ID), todoHash(todo)).Err()
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, todoKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

func todoKey(id string) string {
	return todoKeyPrefix + id
}

func todoHash(todo *domain.Todo) map[string]interface{} {
	return map[string]interface{}{
		fieldTodoID:        todo.ID,
		fieldTodoTitle:     todo.Title,
		fieldTodoCompleted: strconv.FormatBool(todo.Completed),
		fieldTodoUserID:    todo.UserID,
	}
}

func todoFromHash(data map[string]string) domain.Todo {
	return domain.Todo{
		ID:        data[fieldTodoID],
		Title:     data[fieldTodoTitle],
		Completed: data[fieldTodoCompleted] == "true",
		UserID:    data[fieldTodoUserID],
	}
}
