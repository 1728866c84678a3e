package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/todo-service/internal/api/http"
	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/observability"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/service"
	"github.com/spec-kit/todo-service/internal/worker"
)

type testEnv struct {
	app  *fiber.App
	auth *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := config.Config{
		App: config.AppConfig{
			Name:                  "todo-service",
			Version:               "test",
			RequestTimeoutSeconds: 5,
		},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            4,
		},
		CORS: config.CORSConfig{
			AllowOrigins: "http://localhost:3000,http://localhost:5173",
		},
	}

	logger := zap.NewNop()
	store := &persistence.Redis{Client: client}

	userRepo := repository.NewUserRepository(client)
	todoRepo := repository.NewTodoRepository(client)

	authService := service.NewAuthService(cfg.Auth, userRepo, logger)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)
	todoService := service.NewTodoService(todoRepo, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), cfg)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store),
		Auth:           handlers.NewAuthHandler(authService),
		Todos:          handlers.NewTodosHandler(todoService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	return &testEnv{app: app, auth: authService}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (int, http.Header, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, resp.Header, raw
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	status, _, body := e.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)

	var parsed struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(body, &parsed))
	require.Equal(t, "bearer", parsed.TokenType)
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}

func TestLoginAndIdentity(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user, created, err := env.auth.CreateUser(t.Context(), "alice", "wonderland")
	require.NoError(t, err)
	require.True(t, created)

	token := env.login(t, "alice", "wonderland")

	status, _, body := env.request(t, fiber.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	var identity struct {
		Username string `json:"username"`
		UserID   string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(body, &identity))
	require.Equal(t, "alice", identity.Username)
	require.Equal(t, user.ID, identity.UserID)
}

func TestLoginFailures_IdenticalBody(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, created, err := env.auth.CreateUser(t.Context(), "alice", "wonderland")
	require.NoError(t, err)
	require.True(t, created)

	wrongStatus, _, wrongBody := env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "alice", "password": "wrong",
	})
	unknownStatus, _, unknownBody := env.request(t, fiber.MethodPost, "/api/auth/login", "", fiber.Map{
		"username": "bob", "password": "x",
	})

	require.Equal(t, http.StatusUnauthorized, wrongStatus)
	require.Equal(t, http.StatusUnauthorized, unknownStatus)
	require.JSONEq(t, string(wrongBody), string(unknownBody))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	status, headers, _ := env.request(t, fiber.MethodGet, "/api/todos", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Bearer", headers.Get(fiber.HeaderWWWAuthenticate))

	status, headers, _ = env.request(t, fiber.MethodGet, "/api/todos", "not.a.jwt", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Bearer", headers.Get(fiber.HeaderWWWAuthenticate))
}

func TestTodoCRUDFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, _, err := env.auth.CreateUser(t.Context(), "alice", "wonderland")
	require.NoError(t, err)
	token := env.login(t, "alice", "wonderland")

	// create
	status, _, body := env.request(t, fiber.MethodPost, "/api/todos", token, fiber.Map{"title": "buy milk"})
	require.Equal(t, http.StatusOK, status)
	var created struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
		UserID    string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))
	require.Equal(t, "buy milk", created.Title)
	require.False(t, created.Completed)
	require.NotEmpty(t, created.UserID)

	// list
	status, _, body = env.request(t, fiber.MethodGet, "/api/todos", token, nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)

	// get
	status, _, _ = env.request(t, fiber.MethodGet, "/api/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, status)

	// partial update
	status, _, body = env.request(t, fiber.MethodPut, "/api/todos/"+created.ID, token, fiber.Map{"completed": true})
	require.Equal(t, http.StatusOK, status)
	var updated struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	}
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Equal(t, "buy milk", updated.Title)
	require.True(t, updated.Completed)

	// delete
	status, _, body = env.request(t, fiber.MethodDelete, "/api/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"message": "Todo deleted successfully"}`, string(body))

	// gone
	status, _, _ = env.request(t, fiber.MethodGet, "/api/todos/"+created.ID, token, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestTodosVisibleAcrossUsers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, _, err := env.auth.CreateUser(t.Context(), "alice", "wonderland")
	require.NoError(t, err)
	_, _, err = env.auth.CreateUser(t.Context(), "bob", "builder")
	require.NoError(t, err)

	aliceToken := env.login(t, "alice", "wonderland")
	bobToken := env.login(t, "bob", "builder")

	status, _, body := env.request(t, fiber.MethodPost, "/api/todos", aliceToken, fiber.Map{"title": "alice's task"})
	require.Equal(t, http.StatusOK, status)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	// bob sees, edits, and deletes alice's record: reads are not owner-scoped
	status, _, body = env.request(t, fiber.MethodGet, "/api/todos", bobToken, nil)
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)

	status, _, _ = env.request(t, fiber.MethodPut, "/api/todos/"+created.ID, bobToken, fiber.Map{"title": "edited by bob"})
	require.Equal(t, http.StatusOK, status)

	status, _, _ = env.request(t, fiber.MethodDelete, "/api/todos/"+created.ID, bobToken, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestRootAndHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	status, _, body := env.request(t, fiber.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), `"status":"ok"`)

	status, _, body = env.request(t, fiber.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)

	var health struct {
		Status string `json:"status"`
		Redis  string `json:"redis"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, "healthy", health.Status)
	require.Equal(t, "connected", health.Redis)
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, _, err := env.auth.CreateUser(t.Context(), "alice", "wonderland")
	require.NoError(t, err)
	token := env.login(t, "alice", "wonderland")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{name: "login missing fields", method: fiber.MethodPost, path: "/api/auth/login", body: fiber.Map{"username": "alice"}},
		{name: "todo missing title", method: fiber.MethodPost, path: "/api/todos", body: fiber.Map{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := env.request(t, tc.method, tc.path, token, tc.body)
			require.Equal(t, http.StatusBadRequest, status, fmt.Sprintf("body: %s", body))
		})
	}
}
