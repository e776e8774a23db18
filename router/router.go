package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shivraj416/egram/internal/content"
	"github.com/shivraj416/egram/middleware"
	"github.com/shivraj416/egram/socket"
)

// Setup wires every route. The WebSocket endpoint stays outside the metrics
// group because the recorder wrapper would break the connection hijack.
func Setup(h *content.Handler, hub *socket.Hub, auth middleware.Authorizer, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Admin-Token"},
		AllowCredentials: false,
	}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Metrics)

		// Public reads
		r.Get("/api/info", h.GetInfo)
		r.Get("/api/members", h.GetMembers)
		r.Get("/api/schemes", h.GetSchemes)
		r.Get("/api/gallery", h.GetGallery)

		// Public contact submission
		r.Post("/api/contact", h.SubmitContact)

		// Admin mutations, every one behind the single authorization point
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly(auth))

			r.Post("/admin/upload", h.CreateNotice)
			r.Post("/admin/members", h.CreateMember)
			r.Post("/admin/schemes", h.CreateScheme)
			r.Post("/admin/gallery", h.UploadImage)

			r.Delete("/admin/delete/info/{id}", h.DeleteNotice)
			r.Delete("/admin/delete/member/{id}", h.DeleteMember)
			r.Delete("/admin/delete/scheme/{id}", h.DeleteScheme)
			r.Delete("/admin/delete/image/{id}", h.DeleteImage)
		})

		r.Get("/health", h.Health)
		r.Handle("/metrics", promhttp.Handler())
	})

	// Live-update channel for connected viewers
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		socket.ServeWs(hub, w, r)
	})

	return r
}
