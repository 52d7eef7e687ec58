package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/drafts"
	"github.com/ayush/blog-moderation/backend/internal/httpjson"
	"github.com/ayush/blog-moderation/backend/internal/metrics"
	"github.com/ayush/blog-moderation/backend/internal/middleware"
	"github.com/ayush/blog-moderation/backend/internal/moderation"
	"github.com/ayush/blog-moderation/backend/internal/users"
)

type deps struct {
	queue       *moderation.Store
	users       *users.Handler
	drafts      *drafts.Handler
	metrics     *metrics.Metrics
	log         *zap.Logger
	corsOrigins []string
}

func newRouter(d deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", d.metrics.Handler())

	// Admin routes. Admin authentication is not part of this service.
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/summary", func(w http.ResponseWriter, r *http.Request) {
			httpjson.Write(w, http.StatusOK, d.queue.Counts(r.Context()))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/pending", d.users.ListPending)
			r.Get("/approved", d.users.ListApproved)
			r.Post("/approve", d.users.Approve)
			r.Post("/reject", d.users.Reject)
		})

		r.Route("/blog-drafts", func(r chi.Router) {
			r.Get("/", d.drafts.List)
			r.Post("/publish", d.drafts.Publish)
			r.Post("/reject", d.drafts.Reject)
			r.Post("/delete", d.drafts.Delete)
			r.Get("/{id}", d.drafts.Get)
			r.Delete("/{id}", d.drafts.DeleteByPath)
			r.Post("/{id}/approve", d.drafts.PublishByPath)
			r.Post("/{id}/reject", d.drafts.RejectByPath)
		})
	})

	// Public submission routes
	r.Post("/api/submit-blog", d.drafts.Submit)
	r.Post("/api/submit-blog/cover", d.drafts.UploadCover)
	r.Get("/api/covers/{name}", d.drafts.GetCover)

	return r
}
