package handler

import (
	"errors"
	"net/http"
	"time"

	activitydomain "trip-planner-go/internal/domain/activity"

	"github.com/go-chi/chi/v5"
)

type createActivityRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	ScheduledAt  string  `json:"scheduled_at"`
	LocationName *string `json:"location_name"`
	ExternalLink *string `json:"external_link"`
}

type updateActivityRequest struct {
	Title        *string        `json:"title"`
	Description  nullableString `json:"description"`
	ScheduledAt  *string        `json:"scheduled_at"`
	LocationName nullableString `json:"location_name"`
	ExternalLink nullableString `json:"external_link"`
}

type activityResponse struct {
	ID           string    `json:"id"`
	StopID       string    `json:"stop_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	LocationName *string   `json:"location_name"`
	ExternalLink *string   `json:"external_link"`
	CreatedAt    time.Time `json:"created_at"`
}

type activityListResponse struct {
	Items []activityResponse `json:"items"`
}

func toActivityResponse(item *activitydomain.Activity) activityResponse {
	return activityResponse{
		ID:           item.ID,
		StopID:       item.StopID,
		Title:        item.Title,
		Description:  item.Description,
		ScheduledAt:  item.ScheduledAt,
		LocationName: item.LocationName,
		ExternalLink: item.ExternalLink,
		CreatedAt:    item.CreatedAt,
	}
}

func (h *Handlers) ListStopActivities(w http.ResponseWriter, r *http.Request) {
	if !h.requireStopRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	items, err := h.Activities.ListByStop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeActivityError(w, err)
		return
	}
	h.writeActivityList(w, items)
}

func (h *Handlers) ListItineraryActivities(w http.ResponseWriter, r *http.Request) {
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	items, err := h.Activities.ListByItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeActivityError(w, err)
		return
	}
	h.writeActivityList(w, items)
}

func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	if !h.requireActivityRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	item, err := h.Activities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeActivityError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(item))
}

func (h *Handlers) CreateActivity(w http.ResponseWriter, r *http.Request) {
	if !h.requireStopRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req createActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	scheduledAt, err := parseTimestamp(req.ScheduledAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid scheduled_at")
		return
	}

	item, err := h.Activities.Create(r.Context(), activitydomain.CreateInput{
		StopID:       chi.URLParam(r, "id"),
		Title:        req.Title,
		Description:  req.Description,
		ScheduledAt:  scheduledAt,
		LocationName: req.LocationName,
		ExternalLink: req.ExternalLink,
	})
	if err != nil {
		h.writeActivityError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toActivityResponse(item))
}

func (h *Handlers) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	if !h.requireActivityRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req updateActivityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	input := activitydomain.UpdateInput{
		ID:           chi.URLParam(r, "id"),
		Title:        req.Title,
		Description:  activitydomain.OptionalNullableString{Set: req.Description.set, Value: req.Description.value},
		LocationName: activitydomain.OptionalNullableString{Set: req.LocationName.set, Value: req.LocationName.value},
		ExternalLink: activitydomain.OptionalNullableString{Set: req.ExternalLink.set, Value: req.ExternalLink.value},
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := parseTimestamp(*req.ScheduledAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid scheduled_at")
			return
		}
		input.ScheduledAt = &scheduledAt
	}

	item, err := h.Activities.Update(r.Context(), input)
	if err != nil {
		h.writeActivityError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(item))
}

func (h *Handlers) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if !h.requireActivityRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	if err := h.Activities.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeActivityError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeActivityList(w http.ResponseWriter, items []activitydomain.Activity) {
	response := activityListResponse{Items: make([]activityResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toActivityResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) writeActivityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activitydomain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "activity_not_found", "activity not found")
	case errors.Is(err, activitydomain.ErrStopNotFound):
		writeError(w, http.StatusBadRequest, "stop_not_found", "stop not found")
	case errors.Is(err, activitydomain.ErrScheduleOutOfRange):
		writeError(w, http.StatusBadRequest, "schedule_out_of_range", "scheduled time falls outside the stop's date range")
	case errors.Is(err, activitydomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("activities: request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
