package handler

import (
	"errors"
	"net/http"
	"time"

	accommodationdomain "trip-planner-go/internal/domain/accommodation"

	"github.com/go-chi/chi/v5"
)

type createAccommodationRequest struct {
	Name         string  `json:"name"`
	Address      *string `json:"address"`
	ExternalLink *string `json:"external_link"`
	Notes        *string `json:"notes"`
	StopID       *string `json:"stop_id"`
}

type updateAccommodationRequest struct {
	Name         *string        `json:"name"`
	Address      nullableString `json:"address"`
	ExternalLink nullableString `json:"external_link"`
	Notes        nullableString `json:"notes"`
	StopID       nullableString `json:"stop_id"`
}

type accommodationResponse struct {
	ID           string    `json:"id"`
	StopID       *string   `json:"stop_id"`
	ItineraryID  string    `json:"itinerary_id"`
	Name         string    `json:"name"`
	Address      *string   `json:"address"`
	ExternalLink *string   `json:"external_link"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
}

type accommodationListResponse struct {
	Items []accommodationResponse `json:"items"`
}

func toAccommodationResponse(item *accommodationdomain.Accommodation) accommodationResponse {
	return accommodationResponse{
		ID:           item.ID,
		StopID:       item.StopID,
		ItineraryID:  item.ItineraryID,
		Name:         item.Name,
		Address:      item.Address,
		ExternalLink: item.ExternalLink,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt,
	}
}

func (h *Handlers) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	items, err := h.Accommodations.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeAccommodationError(w, err)
		return
	}

	response := accommodationListResponse{Items: make([]accommodationResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toAccommodationResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	if !h.requireAccommodationRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	item, err := h.Accommodations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeAccommodationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccommodationResponse(item))
}

// CreateAccommodationForStop serves POST /stops/{id}/accommodation: the
// itinerary comes from the stop and both link sides are written.
func (h *Handlers) CreateAccommodationForStop(w http.ResponseWriter, r *http.Request) {
	if !h.requireStopRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req createAccommodationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	item, err := h.Accommodations.CreateForStop(r.Context(), chi.URLParam(r, "id"), accommodationdomain.CreateInput{
		Name:         req.Name,
		Address:      req.Address,
		ExternalLink: req.ExternalLink,
		Notes:        req.Notes,
	})
	if err != nil {
		h.writeAccommodationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccommodationResponse(item))
}

// CreateAccommodation serves POST /itineraries/{id}/accommodations for
// standalone accommodations, with an optional stop link in the body.
func (h *Handlers) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req createAccommodationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	item, err := h.Accommodations.CreateStandalone(r.Context(), chi.URLParam(r, "id"), accommodationdomain.StandaloneCreateInput{
		CreateInput: accommodationdomain.CreateInput{
			Name:         req.Name,
			Address:      req.Address,
			ExternalLink: req.ExternalLink,
			Notes:        req.Notes,
		},
		StopID: req.StopID,
	})
	if err != nil {
		h.writeAccommodationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccommodationResponse(item))
}

func (h *Handlers) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	if !h.requireAccommodationRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req updateAccommodationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	item, err := h.Accommodations.Update(r.Context(), accommodationdomain.UpdateInput{
		ID:           chi.URLParam(r, "id"),
		Name:         req.Name,
		Address:      accommodationdomain.OptionalNullableString{Set: req.Address.set, Value: req.Address.value},
		ExternalLink: accommodationdomain.OptionalNullableString{Set: req.ExternalLink.set, Value: req.ExternalLink.value},
		Notes:        accommodationdomain.OptionalNullableString{Set: req.Notes.set, Value: req.Notes.value},
		StopID:       accommodationdomain.OptionalNullableString{Set: req.StopID.set, Value: req.StopID.value},
	})
	if err != nil {
		h.writeAccommodationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAccommodationResponse(item))
}

func (h *Handlers) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	if !h.requireAccommodationRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	if err := h.Accommodations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeAccommodationError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeAccommodationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, accommodationdomain.ErrAccommodationNotFound):
		writeError(w, http.StatusNotFound, "accommodation_not_found", "accommodation not found")
	case errors.Is(err, accommodationdomain.ErrStopNotFound):
		writeError(w, http.StatusBadRequest, "stop_not_found", "stop not found")
	case errors.Is(err, accommodationdomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("accommodations: request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
