package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/uditisharmaaa/journa/internal/api"
	apiMiddleware "github.com/uditisharmaaa/journa/internal/api/middleware"
	"github.com/uditisharmaaa/journa/internal/speech"
)

// setupRouter creates and configures the application router with all routes
// and middleware. The context bounds background utterance pumps spawned by
// the journal handler.
func (app *application) setupRouter(ctx context.Context) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordService,
		app.passwordService,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	journalHandler := api.NewJournalHandler(
		ctx,
		app.workflows,
		app.insights,
		func() speech.Capability { return speech.NewTranscript() },
		app.logger,
	)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Draft lifecycle
			r.Post("/journal/draft", journalHandler.CreateDraft)
			r.Get("/journal/draft", journalHandler.GetDraft)
			r.Put("/journal/draft", journalHandler.UpdateDraft)
			r.Delete("/journal/draft", journalHandler.DeleteDraft)
			r.Post("/journal/draft/utterances", journalHandler.AppendUtterance)
			r.Post("/journal/draft/analyze", journalHandler.Analyze)
			r.Put("/journal/draft/reflections/{label}", journalHandler.SetReflection)
			r.Post("/journal/draft/save", journalHandler.Save)

			// Read-side views
			r.Get("/journal/entries", journalHandler.ListEntries)
			r.Get("/journal/insights", journalHandler.Insights)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
