package itinerary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trip-planner-go/internal/cache"

	"github.com/google/uuid"
)

const maxTitleLength = 100

type Service struct {
	repo  Repository
	cache cache.QueryCache
}

func NewService(repo Repository, queryCache cache.QueryCache) *Service {
	if queryCache == nil {
		queryCache = cache.Noop{}
	}
	return &Service{repo: repo, cache: queryCache}
}

func (s *Service) List(ctx context.Context, userID string) ([]Itinerary, error) {
	key := ListKey(userID)
	if items, ok := cache.GetTyped[[]Itinerary](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) Get(ctx context.Context, userID, id string) (*Itinerary, error) {
	key := DetailForKey(id, userID)
	if item, ok := cache.GetTyped[Itinerary](s.cache, key); ok {
		return &item, nil
	}

	item, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *item)
	return item, nil
}

// Role reports the caller's access to the itinerary: owner, editor or
// viewer. Callers with no access get ErrItineraryNotFound.
func (s *Service) Role(ctx context.Context, userID, id string) (string, error) {
	return s.repo.AccessRole(ctx, userID, id)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Itinerary, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := validateDateOrder(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	item := Itinerary{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Title:       title,
		Description: normalizeOptionalText(input.Description),
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsPublic:    input.IsPublic,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ListsKey())
	s.cache.Set(DetailForKey(item.ID, item.UserID), item)
	return &item, nil
}

// Update applies a partial update. The owner and editor collaborators
// may write; viewers get ErrNotEditor.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Itinerary, error) {
	role, err := s.repo.AccessRole(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}
	if role == RoleViewer {
		return nil, ErrNotEditor
	}

	item, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		item.Title = title
	}
	if input.Description.Set {
		item.Description = normalizeOptionalText(input.Description.Value)
	}
	if input.StartDate.Set {
		item.StartDate = input.StartDate.Value
	}
	if input.EndDate.Set {
		item.EndDate = input.EndDate.Value
	}
	if input.IsPublic != nil {
		item.IsPublic = *input.IsPublic
	}
	if err := validateDateOrder(item.StartDate, item.EndDate); err != nil {
		return nil, err
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ListsKey(), DetailKey(item.ID))
	return item, nil
}

// Delete removes the itinerary, owner only. Dependent rows (stops,
// accommodations, activities, invites, collaborators, attachments) are
// removed by the store's ON DELETE CASCADE constraints, so every
// dependent query key is invalidated here as well.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	role, err := s.repo.AccessRole(ctx, userID, id)
	if err != nil {
		return err
	}
	if role != RoleOwner {
		return ErrNotOwner
	}

	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrItineraryNotFound
	}

	s.cache.Invalidate(
		ListsKey(),
		DetailKey(id),
		cache.NewKey("stops"),
		cache.NewKey("accommodations"),
		cache.NewKey("activities"),
		cache.NewKey("invites"),
		cache.NewKey("attachments"),
	)
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len([]rune(title)) > maxTitleLength {
		return "", fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, maxTitleLength)
	}
	return title, nil
}

func validateDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}
	return nil
}

func normalizeOptionalText(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
