package handler

import (
	"errors"
	"net/http"
	"time"

	attachmentdomain "trip-planner-go/internal/domain/attachment"
	"trip-planner-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type attachmentResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	URL             string    `json:"url"`
	Type            string    `json:"type"`
	Filename        string    `json:"filename"`
	ItineraryID     *string   `json:"itinerary_id"`
	StopID          *string   `json:"stop_id"`
	ActivityID      *string   `json:"activity_id"`
	AccommodationID *string   `json:"accommodation_id"`
	NoteID          *string   `json:"note_id"`
	UploadedAt      time.Time `json:"uploaded_at"`
}

type attachmentListResponse struct {
	Items []attachmentResponse `json:"items"`
}

func toAttachmentResponse(item *attachmentdomain.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:              item.ID,
		UserID:          item.UserID,
		URL:             item.URL,
		Type:            item.Type,
		Filename:        item.Filename,
		ItineraryID:     item.ItineraryID,
		StopID:          item.StopID,
		ActivityID:      item.ActivityID,
		AccommodationID: item.AccommodationID,
		NoteID:          item.NoteID,
		UploadedAt:      item.UploadedAt,
	}
}

func (h *Handlers) ListAttachments(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	entityType := attachmentdomain.EntityType(chi.URLParam(r, "entity_type"))
	items, err := h.Attachments.ListForEntity(r.Context(), entityType, chi.URLParam(r, "entity_id"))
	if err != nil {
		h.writeAttachmentError(w, err)
		return
	}

	response := attachmentListResponse{Items: make([]attachmentResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toAttachmentResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

// UploadAttachment accepts a multipart form with a "file" part plus
// entity_type and entity_id fields.
func (h *Handlers) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := r.ParseMultipartForm(attachmentdomain.DefaultMaxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "file part is required")
		return
	}
	defer file.Close()

	item, err := h.Attachments.Upload(r.Context(), attachmentdomain.UploadInput{
		UserID:      user.ID,
		EntityType:  attachmentdomain.EntityType(r.FormValue("entity_type")),
		EntityID:    r.FormValue("entity_id"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}, file)
	if err != nil {
		h.writeAttachmentError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAttachmentResponse(item))
}

func (h *Handlers) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Attachments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeAttachmentError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeAttachmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, attachmentdomain.ErrAttachmentNotFound):
		writeError(w, http.StatusNotFound, "attachment_not_found", "attachment not found")
	case errors.Is(err, attachmentdomain.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "file size must be less than 50MB")
	case errors.Is(err, attachmentdomain.ErrUnsupportedFileType):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_file_type", "file type not supported")
	case errors.Is(err, attachmentdomain.ErrUnknownEntity):
		writeError(w, http.StatusBadRequest, "unknown_entity_type", "unknown attachment entity type")
	case errors.Is(err, attachmentdomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("attachments: request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
