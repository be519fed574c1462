package invite

import (
	"context"
	"fmt"
	"strings"

	"trip-planner-go/internal/cache"
	"trip-planner-go/pkg/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo  Repository
	cache cache.QueryCache
	log   logger.Logger
}

func NewService(repo Repository, queryCache cache.QueryCache, log logger.Logger) *Service {
	if queryCache == nil {
		queryCache = cache.Noop{}
	}
	return &Service{repo: repo, cache: queryCache, log: log}
}

func (s *Service) ListByItinerary(ctx context.Context, itineraryID string) ([]Invite, error) {
	key := ListKey(itineraryID)
	if items, ok := cache.GetTyped[[]Invite](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

// PendingForEmail returns every pending invite addressed to email.
func (s *Service) PendingForEmail(ctx context.Context, email string) ([]Invite, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	key := PendingKey(email)
	if items, ok := cache.GetTyped[[]Invite](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListPendingByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Invite, error) {
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if input.Role != RoleViewer && input.Role != RoleEditor {
		return nil, fmt.Errorf("%w: role must be %q or %q", ErrInvalidInput, RoleViewer, RoleEditor)
	}
	if input.ItineraryID == "" {
		return nil, fmt.Errorf("%w: itinerary id is required", ErrInvalidInput)
	}

	item := Invite{
		ID:          uuid.NewString(),
		ItineraryID: input.ItineraryID,
		Email:       email,
		Role:        input.Role,
		Status:      StatusPending,
		InvitedBy:   input.InvitedBy,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ListKey(item.ItineraryID), PendingKey(email))
	return &item, nil
}

// Accept moves a pending invite to accepted and then inserts the
// collaborator row for userID. Only the user the invite is addressed
// to may accept; email is the caller's authenticated email. The second
// write is best-effort: a failure leaves the invite accepted and comes
// back as a warning on the result rather than an error.
func (s *Service) Accept(ctx context.Context, id, userID, email string) (*AcceptResult, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Email != normalizeEmail(email) {
		return nil, ErrNotInvitee
	}
	if item.Status != StatusPending {
		return nil, ErrInviteAlreadyResolved
	}

	item.Status = StatusAccepted
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	s.invalidateAfterWrite(item)

	result := &AcceptResult{Invite: item}
	exists, err := s.repo.HasCollaborator(ctx, item.ItineraryID, userID)
	if err != nil {
		s.log.Warn("invite accepted but collaborator lookup failed",
			"invite_id", item.ID, "user_id", userID, "error", err)
		result.Warning = "invite accepted, but collaborator access could not be granted"
		return result, nil
	}
	if exists {
		// Already a collaborator, nothing to grant.
		result.CollaboratorAdded = false
		return result, nil
	}

	collaborator := Collaborator{
		ID:          uuid.NewString(),
		ItineraryID: item.ItineraryID,
		UserID:      userID,
		Role:        item.Role,
	}
	if err := s.repo.AddCollaborator(ctx, &collaborator); err != nil {
		s.log.Warn("invite accepted but collaborator insert failed",
			"invite_id", item.ID, "user_id", userID, "error", err)
		result.Warning = "invite accepted, but collaborator access could not be granted"
		return result, nil
	}

	result.CollaboratorAdded = true
	// The new collaborator's itinerary queries are stale now.
	s.cache.Invalidate(cache.NewKey("itineraries"))
	return result, nil
}

// Decline moves a pending invite to declined. Like Accept, only the
// invited email may decline.
func (s *Service) Decline(ctx context.Context, id, email string) (*Invite, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Email != normalizeEmail(email) {
		return nil, ErrNotInvitee
	}
	if item.Status != StatusPending {
		return nil, ErrInviteAlreadyResolved
	}

	item.Status = StatusDeclined
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(item)
	return item, nil
}

// Delete revokes a pending invite. Only the inviter may revoke, and
// resolved invites stay on record.
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.InvitedBy != userID {
		return ErrNotInviter
	}
	if item.Status != StatusPending {
		return ErrInviteAlreadyResolved
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInviteNotFound
	}

	s.invalidateAfterWrite(item)
	return nil
}

func (s *Service) invalidateAfterWrite(item *Invite) {
	s.cache.Invalidate(ListKey(item.ItineraryID), PendingKey(item.Email))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
