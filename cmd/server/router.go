package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/onurvatan/Clean-KISS-Architecture/internal/api"
	apimiddleware "github.com/onurvatan/Clean-KISS-Architecture/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Order matters: tracing comes before anything
// that logs, rate limiting before the idempotency layer so throttled
// requests are never recorded, and principal resolution last so 429s
// skip token validation.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.Trace)
	r.Use(app.rateLimiter.Handle)

	idem := apimiddleware.NewIdempotencyMiddleware(
		app.idempotencyStore,
		time.Duration(app.config.Idempotency.TTLHours)*time.Hour,
		app.config.Idempotency.MaxBodyBytes,
	)
	r.Use(idem.Handle)

	principal := apimiddleware.NewPrincipalMiddleware(app.jwtService)
	r.Use(principal.Resolve)

	studentHandler := api.NewStudentHandler(app.studentStore, app.registry, app.authorizer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/students", studentHandler.CreateStudent)
		r.Get("/students", studentHandler.ListStudents)
		r.Get("/students/{id}", studentHandler.GetStudent)
		r.Delete("/students/{id}", studentHandler.DeleteStudent)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
