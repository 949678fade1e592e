package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/homecare-staffing/nursing-backend-go/internal/handler/http/middleware"
	"github.com/homecare-staffing/nursing-backend-go/internal/handler/http/response"
)

// RouterOptions carries what the router needs beyond handlers
type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(tokenAuth *jwtauth.JWTAuth, attendanceHandler AttendanceHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(middleware.AuthRequired(tokenAuth))

			r.Route("/assignments/{assignmentID}/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.Timeline)
				r.Get("/today", attendanceHandler.Today)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", attendanceHandler.Mark)
					r.Post("/check-in", attendanceHandler.CheckIn)
					r.Post("/full-shift", attendanceHandler.FullShift)
					r.Delete("/{date}", attendanceHandler.UnmarkByDate)
				})
			})

			r.Route("/attendance/{attendanceID}", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Delete("/", attendanceHandler.Unmark)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
