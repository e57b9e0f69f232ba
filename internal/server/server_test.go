package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/roster/internal/app"
	"github.com/nfrund/roster/internal/config"
	"github.com/nfrund/roster/internal/pubsub"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg, err := config.FromEnv(func(key string) string {
		switch key {
		case "SERVER_ADDR":
			return "127.0.0.1:0"
		case "SHUTDOWN_TIMEOUT":
			return "2s"
		}
		return ""
	})
	require.NoError(t, err)

	deps, err := app.NewDependencies(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close(context.Background()) })

	s := New(cfg, deps)
	s.RegisterRoutes()
	return s
}

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	e := echo.New()

	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{AddSource: true}))
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})

	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":"internal_error","message":"Internal Server Error"}`, rec.Body.String())

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)")
	assert.Contains(t, logOutput, `error="a deliberate unhandled error occurred"`)
	assert.Contains(t, logOutput, "stack_trace=")
	assert.Contains(t, logOutput, "runtime/debug/stack.go")
	assert.Contains(t, logOutput, "internal/server/server_test.go")
}

func TestHTTPErrorHandler_HTTPError(t *testing.T) {
	e := echo.New()
	setupErrorHandling(e)

	req := httptest.NewRequest(http.MethodGet, "/no-such-route", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"code":"http_error","message":"Not Found"}`, rec.Body.String())
}

func TestServer_Routes(t *testing.T) {
	s := newTestServer(t)

	body := strings.NewReader(`{"user_id":"user1","username":"Alice"}`)
	req := httptest.NewRequest(http.MethodPost, "/rooms/demo-room/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/rooms/demo-room", nil)
	rec = httptest.NewRecorder()
	s.E.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"active_users":["Alice"]`)

	assert.Equal(t, []string{"Alice"}, s.Deps.Store.ActiveUsernames("demo-room"))
}

func TestServer_StartAndShutdown(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lifecycle := make(chan LifecycleEvent, 2)
	for _, topic := range []string{TopicServerStarted.Name(), TopicServerStopped.Name()} {
		err := s.Deps.Bridge.Subscribe(ctx, topic, func(ctx context.Context, msg pubsub.Message) error {
			var evt LifecycleEvent
			if err := json.Unmarshal(msg.Payload, &evt); err != nil {
				return err
			}
			lifecycle <- evt
			return nil
		})
		require.NoError(t, err)
	}

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	var started LifecycleEvent
	select {
	case started = <-lifecycle:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not report start")
	}
	require.NotEmpty(t, started.Addr)

	resp, err := http.Get("http://" + started.Addr + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
