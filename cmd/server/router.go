package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bkjNprosoft/tarot-2026/internal/api"
	apiMiddleware "github.com/bkjNprosoft/tarot-2026/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Reading endpoints work anonymously; a valid token merely
// attaches ownership. The account endpoints exist only on the postgres
// backend.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	readingHandler := api.NewReadingHandler(app.readingService)
	interpretationHandler := api.NewInterpretationHandler(app.readingService)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if app.jwtService != nil {
				authMw := apiMiddleware.NewAuthMiddleware(app.jwtService)
				r.Use(authMw.OptionalAuthenticate)
			}

			r.Post("/readings", readingHandler.CreateReading)
			r.Get("/readings", readingHandler.ListReadings)
			r.Get("/readings/{id}", readingHandler.GetReading)
			r.Delete("/readings/{id}", readingHandler.DeleteReading)
			r.Post("/readings/{id}/interpretation", readingHandler.GenerateInterpretation)

			r.Post("/tarot-interpretation", interpretationHandler.Interpret)
		})

		if app.userService != nil {
			authHandler := api.NewAuthHandler(app.userService, app.jwtService)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
