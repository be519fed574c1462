package handler

import (
	"errors"
	"net/http"
	"time"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	"trip-planner-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type createItineraryRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	IsPublic    *bool   `json:"is_public"`
}

type updateItineraryRequest struct {
	Title       *string        `json:"title"`
	Description nullableString `json:"description"`
	StartDate   nullableDate   `json:"start_date"`
	EndDate     nullableDate   `json:"end_date"`
	IsPublic    *bool          `json:"is_public"`
}

type itineraryResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	StartDate   *string   `json:"start_date"`
	EndDate     *string   `json:"end_date"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type itineraryListResponse struct {
	Items []itineraryResponse `json:"items"`
}

func toItineraryResponse(item *itinerarydomain.Itinerary) itineraryResponse {
	return itineraryResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		Title:       item.Title,
		Description: item.Description,
		StartDate:   formatDate(item.StartDate),
		EndDate:     formatDate(item.EndDate),
		IsPublic:    item.IsPublic,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func (h *Handlers) ListItineraries(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Itineraries.List(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("itineraries.list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := itineraryListResponse{Items: make([]itineraryResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toItineraryResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetItinerary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	item, err := h.Itineraries.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.writeItineraryError(w, err, user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toItineraryResponse(item))
}

func (h *Handlers) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	startDate, err := parseNullableDateString(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseNullableDateString(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	input := itinerarydomain.CreateInput{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if req.IsPublic != nil {
		input.IsPublic = *req.IsPublic
	}

	item, err := h.Itineraries.Create(r.Context(), input)
	if err != nil {
		h.writeItineraryError(w, err, user.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toItineraryResponse(item))
}

func (h *Handlers) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req updateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	input := itinerarydomain.UpdateInput{
		ID:          chi.URLParam(r, "id"),
		UserID:      user.ID,
		Title:       req.Title,
		Description: itinerarydomain.OptionalNullableString{Set: req.Description.set, Value: req.Description.value},
		StartDate:   itinerarydomain.OptionalNullableDate{Set: req.StartDate.set, Value: req.StartDate.value},
		EndDate:     itinerarydomain.OptionalNullableDate{Set: req.EndDate.set, Value: req.EndDate.value},
		IsPublic:    req.IsPublic,
	}

	item, err := h.Itineraries.Update(r.Context(), input)
	if err != nil {
		h.writeItineraryError(w, err, user.ID)
		return
	}
	writeJSON(w, http.StatusOK, toItineraryResponse(item))
}

func (h *Handlers) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Itineraries.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		h.writeItineraryError(w, err, user.ID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeItineraryError(w http.ResponseWriter, err error, userID string) {
	switch {
	case errors.Is(err, itinerarydomain.ErrItineraryNotFound):
		h.log.BusinessError("itineraries: not found", err, "user_id", userID)
		writeError(w, http.StatusNotFound, "itinerary_not_found", "itinerary not found")
	case errors.Is(err, itinerarydomain.ErrNotEditor):
		writeError(w, http.StatusForbidden, "editor_role_required", "editor access required")
	case errors.Is(err, itinerarydomain.ErrNotOwner):
		writeError(w, http.StatusForbidden, "owner_only", "only the owner can delete an itinerary")
	case errors.Is(err, itinerarydomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("itineraries: request failed", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func parseNullableDateString(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDateParam(*value)
}
