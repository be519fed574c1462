package handler

import (
	"net/http"

	"trip-planner-go/internal/transport/httpserver/middleware"
)

type currentItineraryResponse struct {
	ItineraryID string `json:"itinerary_id"`
}

type setCurrentItineraryRequest struct {
	ItineraryID string `json:"itinerary_id"`
}

func (h *Handlers) GetCurrentItinerary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	itineraryID, err := h.Sessions.CurrentItinerary(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("session.get_current failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, currentItineraryResponse{ItineraryID: itineraryID})
}

// SetCurrentItinerary records the session's selection. An empty
// itinerary_id clears it.
func (h *Handlers) SetCurrentItinerary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req setCurrentItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	if err := h.Sessions.SetCurrentItinerary(r.Context(), user.ID, req.ItineraryID); err != nil {
		h.log.InternalError("session.set_current failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, currentItineraryResponse{ItineraryID: req.ItineraryID})
}

func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Sessions.End(r.Context(), user.ID); err != nil {
		h.log.InternalError("session.end failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
