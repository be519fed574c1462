package handler

import (
	"errors"
	"net/http"
	"time"

	stopdomain "trip-planner-go/internal/domain/stop"

	"github.com/go-chi/chi/v5"
)

type createStopRequest struct {
	ParentStopID *string `json:"parent_stop_id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	LocationName *string `json:"location_name"`
	StartDate    *string `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Order        *int    `json:"order"`
	ImageURL     *string `json:"image_url"`
}

type updateStopRequest struct {
	Title           *string        `json:"title"`
	Description     nullableString `json:"description"`
	LocationName    nullableString `json:"location_name"`
	StartDate       nullableDate   `json:"start_date"`
	EndDate         nullableDate   `json:"end_date"`
	Order           *int           `json:"order"`
	ImageURL        nullableString `json:"image_url"`
	ParentStopID    nullableString `json:"parent_stop_id"`
	AccommodationID nullableString `json:"accommodation_id"`
}

type stopResponse struct {
	ID              string    `json:"id"`
	ItineraryID     string    `json:"itinerary_id"`
	ParentStopID    *string   `json:"parent_stop_id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	LocationName    *string   `json:"location_name"`
	StartDate       *string   `json:"start_date"`
	EndDate         *string   `json:"end_date"`
	Order           *int      `json:"order"`
	ImageURL        *string   `json:"image_url"`
	AccommodationID *string   `json:"accommodation_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type stopListResponse struct {
	Items []stopResponse `json:"items"`
}

func toStopResponse(item *stopdomain.Stop) stopResponse {
	return stopResponse{
		ID:              item.ID,
		ItineraryID:     item.ItineraryID,
		ParentStopID:    item.ParentStopID,
		Title:           item.Title,
		Description:     item.Description,
		LocationName:    item.LocationName,
		StartDate:       formatDate(item.StartDate),
		EndDate:         formatDate(item.EndDate),
		Order:           item.Order,
		ImageURL:        item.ImageURL,
		AccommodationID: item.AccommodationID,
		CreatedAt:       item.CreatedAt,
	}
}

func (h *Handlers) ListStops(w http.ResponseWriter, r *http.Request) {
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	items, err := h.Stops.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStopError(w, err)
		return
	}

	response := stopListResponse{Items: make([]stopResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toStopResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetStop(w http.ResponseWriter, r *http.Request) {
	item, err := h.Stops.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeStopError(w, err)
		return
	}
	if !h.requireItineraryRole(w, r, item.ItineraryID, false) {
		return
	}
	writeJSON(w, http.StatusOK, toStopResponse(item))
}

func (h *Handlers) CreateStop(w http.ResponseWriter, r *http.Request) {
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req createStopRequest
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

	item, err := h.Stops.Create(r.Context(), stopdomain.CreateInput{
		ItineraryID:  chi.URLParam(r, "id"),
		ParentStopID: req.ParentStopID,
		Title:        req.Title,
		Description:  req.Description,
		LocationName: req.LocationName,
		StartDate:    startDate,
		EndDate:      endDate,
		Order:        req.Order,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		h.writeStopError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStopResponse(item))
}

func (h *Handlers) UpdateStop(w http.ResponseWriter, r *http.Request) {
	if !h.requireStopRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req updateStopRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	item, err := h.Stops.Update(r.Context(), stopdomain.UpdateInput{
		ID:              chi.URLParam(r, "id"),
		Title:           req.Title,
		Description:     stopdomain.OptionalNullableString{Set: req.Description.set, Value: req.Description.value},
		LocationName:    stopdomain.OptionalNullableString{Set: req.LocationName.set, Value: req.LocationName.value},
		StartDate:       stopdomain.OptionalNullableDate{Set: req.StartDate.set, Value: req.StartDate.value},
		EndDate:         stopdomain.OptionalNullableDate{Set: req.EndDate.set, Value: req.EndDate.value},
		Order:           req.Order,
		ImageURL:        stopdomain.OptionalNullableString{Set: req.ImageURL.set, Value: req.ImageURL.value},
		ParentStopID:    stopdomain.OptionalNullableString{Set: req.ParentStopID.set, Value: req.ParentStopID.value},
		AccommodationID: stopdomain.OptionalNullableString{Set: req.AccommodationID.set, Value: req.AccommodationID.value},
	})
	if err != nil {
		h.writeStopError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStopResponse(item))
}

func (h *Handlers) DeleteStop(w http.ResponseWriter, r *http.Request) {
	if !h.requireStopRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	if err := h.Stops.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeStopError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeStopError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stopdomain.ErrStopNotFound):
		writeError(w, http.StatusNotFound, "stop_not_found", "stop not found")
	case errors.Is(err, stopdomain.ErrParentStopNotFound):
		writeError(w, http.StatusBadRequest, "parent_stop_not_found", "parent stop not found")
	case errors.Is(err, stopdomain.ErrNestedChildStop):
		writeError(w, http.StatusBadRequest, "nested_child_stop", "sub-stops cannot be nested under another sub-stop")
	case errors.Is(err, stopdomain.ErrParentHasChildren):
		writeError(w, http.StatusBadRequest, "parent_has_children", "a stop with sub-stops cannot become a sub-stop")
	case errors.Is(err, stopdomain.ErrParentOtherItinerary):
		writeError(w, http.StatusBadRequest, "parent_other_itinerary", "parent stop belongs to a different itinerary")
	case errors.Is(err, stopdomain.ErrAccommodationNotFound):
		writeError(w, http.StatusBadRequest, "accommodation_not_found", "accommodation not found")
	case errors.Is(err, stopdomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("stops: request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
