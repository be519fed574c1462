package httpserver

import (
	"net/http"
	"strings"
	"time"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/transport/httpserver/handler"
	authmw "trip-planner-go/internal/transport/httpserver/middleware"
	"trip-planner-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	// Stored attachment objects are served straight from disk under the
	// public base the upload URLs were built with.
	if base := strings.TrimRight(cfg.Storage.PublicBase, "/"); strings.HasPrefix(base, "/") {
		r.Handle(base+"/*", http.StripPrefix(base+"/", http.FileServer(http.Dir(cfg.Storage.Dir))))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/session/current-itinerary", handlers.GetCurrentItinerary)
			r.Put("/session/current-itinerary", handlers.SetCurrentItinerary)
			r.Delete("/session", handlers.EndSession)

			r.Get("/itineraries", handlers.ListItineraries)
			r.Post("/itineraries", handlers.CreateItinerary)
			r.Get("/itineraries/{id}", handlers.GetItinerary)
			r.Patch("/itineraries/{id}", handlers.UpdateItinerary)
			r.Delete("/itineraries/{id}", handlers.DeleteItinerary)

			r.Get("/itineraries/{id}/stops", handlers.ListStops)
			r.Post("/itineraries/{id}/stops", handlers.CreateStop)
			r.Get("/stops/{id}", handlers.GetStop)
			r.Patch("/stops/{id}", handlers.UpdateStop)
			r.Delete("/stops/{id}", handlers.DeleteStop)

			r.Get("/itineraries/{id}/accommodations", handlers.ListAccommodations)
			r.Post("/itineraries/{id}/accommodations", handlers.CreateAccommodation)
			r.Post("/stops/{id}/accommodation", handlers.CreateAccommodationForStop)
			r.Get("/accommodations/{id}", handlers.GetAccommodation)
			r.Patch("/accommodations/{id}", handlers.UpdateAccommodation)
			r.Delete("/accommodations/{id}", handlers.DeleteAccommodation)

			r.Get("/itineraries/{id}/activities", handlers.ListItineraryActivities)
			r.Get("/stops/{id}/activities", handlers.ListStopActivities)
			r.Post("/stops/{id}/activities", handlers.CreateActivity)
			r.Get("/activities/{id}", handlers.GetActivity)
			r.Patch("/activities/{id}", handlers.UpdateActivity)
			r.Delete("/activities/{id}", handlers.DeleteActivity)

			r.Get("/invites/pending", handlers.PendingInvites)
			r.Get("/itineraries/{id}/invites", handlers.ListInvites)
			r.Post("/itineraries/{id}/invites", handlers.CreateInvite)
			r.Post("/invites/{id}/accept", handlers.AcceptInvite)
			r.Post("/invites/{id}/decline", handlers.DeclineInvite)
			r.Delete("/invites/{id}", handlers.DeleteInvite)

			r.Get("/attachments/{entity_type}/{entity_id}", handlers.ListAttachments)
			r.Post("/attachments", handlers.UploadAttachment)
			r.Delete("/attachments/{id}", handlers.DeleteAttachment)
		})
	})

	return r
}
