// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"coursehub/internal/api/handler"
)

// Handlers groups the resource handlers the router mounts.
type Handlers struct {
	User       *handler.UserHandler
	Wallet     *handler.WalletHandler
	Enrollment *handler.EnrollmentHandler
	Course     *handler.CourseHandler
	Preference *handler.PreferenceHandler
	Permission *handler.PermissionHandler
	Activity   *handler.ActivityHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Account creation and the public catalog need no identity.
	r.Post("/users", h.User.Create)
	r.Get("/courses", h.Course.List)
	r.Get("/courses/{courseID}", h.Course.Get)
	r.Get("/courses/{courseID}/lessons", h.Course.ListLessons)

	// Everything else acts on behalf of the caller.
	r.Group(func(r chi.Router) {
		r.Use(handler.RequireIdentity(logger))

		r.Get("/users/me", h.User.Me)

		r.Post("/courses", h.Course.Create)
		r.Put("/courses/{courseID}", h.Course.Update)
		r.Delete("/courses/{courseID}", h.Course.Delete)
		r.Post("/courses/{courseID}/lessons", h.Course.AddLesson)
		r.Put("/courses/{courseID}/lessons/{lessonID}", h.Course.UpdateLesson)
		r.Delete("/courses/{courseID}/lessons/{lessonID}", h.Course.DeleteLesson)

		r.Get("/activities", h.Activity.List)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", h.Wallet.GetBalance)
			r.Post("/top-up", h.Wallet.TopUp)
			r.Get("/transactions", h.Wallet.GetTransactionHistory)
		})

		r.Route("/enrollments", func(r chi.Router) {
			r.Post("/", h.Enrollment.Enroll)
			r.Get("/", h.Enrollment.List)
			r.Delete("/{courseID}", h.Enrollment.Unenroll)
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", h.Preference.Get)
			r.Put("/", h.Preference.Update)
		})

		r.Route("/permissions", func(r chi.Router) {
			r.Get("/", h.Permission.Get)
			r.Put("/", h.Permission.Update)
			r.Delete("/", h.Permission.Delete)
		})
	})

	return r
}
