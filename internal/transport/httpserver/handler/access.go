package handler

import (
	"net/http"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	"trip-planner-go/internal/transport/httpserver/middleware"
)

// requireItineraryRole gates child-entity operations on the caller's
// access to the owning itinerary. write demands owner or editor. A
// false return means the error response has already been written.
func (h *Handlers) requireItineraryRole(w http.ResponseWriter, r *http.Request, itineraryID string, write bool) bool {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return false
	}

	role, err := h.Itineraries.Role(r.Context(), user.ID, itineraryID)
	if err != nil {
		h.writeItineraryError(w, err, user.ID)
		return false
	}
	if write && role == itinerarydomain.RoleViewer {
		writeError(w, http.StatusForbidden, "editor_role_required", "editor access required")
		return false
	}
	return true
}

// requireStopRole resolves the stop's itinerary first, for routes
// addressed by stop ID.
func (h *Handlers) requireStopRole(w http.ResponseWriter, r *http.Request, stopID string, write bool) bool {
	item, err := h.Stops.Get(r.Context(), stopID)
	if err != nil {
		h.writeStopError(w, err)
		return false
	}
	return h.requireItineraryRole(w, r, item.ItineraryID, write)
}

func (h *Handlers) requireAccommodationRole(w http.ResponseWriter, r *http.Request, id string, write bool) bool {
	item, err := h.Accommodations.Get(r.Context(), id)
	if err != nil {
		h.writeAccommodationError(w, err)
		return false
	}
	return h.requireItineraryRole(w, r, item.ItineraryID, write)
}

// requireActivityRole walks activity to stop to itinerary.
func (h *Handlers) requireActivityRole(w http.ResponseWriter, r *http.Request, id string, write bool) bool {
	item, err := h.Activities.Get(r.Context(), id)
	if err != nil {
		h.writeActivityError(w, err)
		return false
	}
	return h.requireStopRole(w, r, item.StopID, write)
}
