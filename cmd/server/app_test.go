package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uditisharmaaa/journa/internal/config"
	"github.com/uditisharmaaa/journa/internal/insights"
	"github.com/uditisharmaaa/journa/internal/mocks"
	"github.com/uditisharmaaa/journa/internal/service/auth"
	"github.com/uditisharmaaa/journa/internal/workflow"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewApplicationRejectsWeakJWTSecret(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info"},
		Auth: config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		},
	}

	_, err := newApplication(context.Background(), cfg, testLogger(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

// newTestApplication builds an application around mock stores and services,
// skipping the database and external API clients.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	logger := testLogger()
	entryStore := mocks.NewMockEntryStore()

	workflows, err := workflow.NewManager(
		&mocks.MockClassifier{}, &mocks.MockReframeGenerator{}, entryStore, logger)
	require.NoError(t, err)

	insightsSvc, err := insights.NewService(entryStore, time.Minute, logger)
	require.NoError(t, err)

	return &application{
		config: &config.Config{
			Server: config.ServerConfig{Port: 8080, LogLevel: "error"},
		},
		logger:          logger,
		userStore:       mocks.NewMockUserStore(),
		entryStore:      entryStore,
		jwtService:      &mocks.MockJWTService{Token: "test-token", ValidateErr: auth.ErrInvalidToken},
		passwordService: auth.NewBcryptService(4),
		workflows:       workflows,
		insights:        insightsSvc,
	}
}

func TestRouterHealthCheck(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter(context.Background())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRouterProtectsJournalRoutes(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter(context.Background())

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/journal/draft"},
		{http.MethodGet, "/api/journal/draft"},
		{http.MethodPost, "/api/journal/draft/analyze"},
		{http.MethodPost, "/api/journal/draft/save"},
		{http.MethodGet, "/api/journal/entries"},
		{http.MethodGet, "/api/journal/insights"},
	}

	for _, route := range protected {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code,
			"%s %s should require authentication", route.method, route.path)
	}
}

func TestRouterRegisterEndToEnd(t *testing.T) {
	t.Parallel()

	app := newTestApplication(t)
	router := app.setupRouter(context.Background())

	body := `{"email":"new@example.com","password":"a-long-enough-password"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}
