package handler

import (
	"errors"
	"net/http"
	"time"

	invitedomain "trip-planner-go/internal/domain/invite"
	"trip-planner-go/internal/transport/httpserver/middleware"

	"github.com/go-chi/chi/v5"
)

type createInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type inviteResponse struct {
	ID          string    `json:"id"`
	ItineraryID string    `json:"itinerary_id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	InvitedBy   string    `json:"invited_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type inviteListResponse struct {
	Items []inviteResponse `json:"items"`
}

// pendingInvitesResponse carries the one-shot presentation flag next to
// the pending invites themselves.
type pendingInvitesResponse struct {
	Items   []inviteResponse `json:"items"`
	Present bool             `json:"present"`
}

type acceptInviteResponse struct {
	Invite            inviteResponse `json:"invite"`
	CollaboratorAdded bool           `json:"collaborator_added"`
	Warning           string         `json:"warning,omitempty"`
}

func toInviteResponse(item *invitedomain.Invite) inviteResponse {
	return inviteResponse{
		ID:          item.ID,
		ItineraryID: item.ItineraryID,
		Email:       item.Email,
		Role:        item.Role,
		Status:      item.Status,
		InvitedBy:   item.InvitedBy,
		CreatedAt:   item.CreatedAt,
	}
}

func (h *Handlers) ListInvites(w http.ResponseWriter, r *http.Request) {
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), false) {
		return
	}

	items, err := h.Invites.ListByItinerary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeInviteError(w, err)
		return
	}

	response := inviteListResponse{Items: make([]inviteResponse, 0, len(items))}
	for i := range items {
		response.Items = append(response.Items, toInviteResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

// PendingInvites returns the caller's pending invites together with the
// session's one-shot presentation decision.
func (h *Handlers) PendingInvites(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	items, err := h.Invites.PendingForEmail(r.Context(), user.Email)
	if err != nil {
		h.writeInviteError(w, err)
		return
	}

	present, err := h.Sessions.ShouldPresentInvites(r.Context(), user.ID, len(items))
	if err != nil {
		h.log.InternalError("invites.pending: session state failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := pendingInvitesResponse{
		Items:   make([]inviteResponse, 0, len(items)),
		Present: present,
	}
	for i := range items {
		response.Items = append(response.Items, toInviteResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}
	if !h.requireItineraryRole(w, r, chi.URLParam(r, "id"), true) {
		return
	}

	var req createInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid body")
		return
	}

	item, err := h.Invites.Create(r.Context(), invitedomain.CreateInput{
		ItineraryID: chi.URLParam(r, "id"),
		Email:       req.Email,
		Role:        req.Role,
		InvitedBy:   user.ID,
	})
	if err != nil {
		h.writeInviteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInviteResponse(item))
}

func (h *Handlers) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	result, err := h.Invites.Accept(r.Context(), chi.URLParam(r, "id"), user.ID, user.Email)
	if err != nil {
		h.writeInviteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, acceptInviteResponse{
		Invite:            toInviteResponse(result.Invite),
		CollaboratorAdded: result.CollaboratorAdded,
		Warning:           result.Warning,
	})
}

func (h *Handlers) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	item, err := h.Invites.Decline(r.Context(), chi.URLParam(r, "id"), user.Email)
	if err != nil {
		h.writeInviteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toInviteResponse(item))
}

func (h *Handlers) DeleteInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if err := h.Invites.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		h.writeInviteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeInviteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invitedomain.ErrInviteNotFound):
		writeError(w, http.StatusNotFound, "invite_not_found", "invite not found")
	case errors.Is(err, invitedomain.ErrInviteAlreadyResolved):
		writeError(w, http.StatusConflict, "invite_already_resolved", "invite has already been accepted or declined")
	case errors.Is(err, invitedomain.ErrNotInviter):
		writeError(w, http.StatusForbidden, "not_inviter", "only the inviter can revoke an invite")
	case errors.Is(err, invitedomain.ErrNotInvitee):
		writeError(w, http.StatusForbidden, "not_invitee", "invite is addressed to a different email")
	case errors.Is(err, invitedomain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		h.log.InternalError("invites: request failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
