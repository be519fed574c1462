package activity

import (
	"context"
	"fmt"
	"strings"

	"trip-planner-go/internal/cache"

	"github.com/google/uuid"
)

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

func (s *Service) ListByStop(ctx context.Context, stopID string) ([]Activity, error) {
	key := StopListKey(stopID)
	if items, ok := cache.GetTyped[[]Activity](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListByStop(ctx, stopID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) ListByItinerary(ctx context.Context, itineraryID string) ([]Activity, error) {
	key := ItineraryListKey(itineraryID)
	if items, ok := cache.GetTyped[[]Activity](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Activity, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	key := DetailKey(id)
	if item, ok := cache.GetTyped[Activity](s.cache, key); ok {
		return &item, nil
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *item)
	return item, nil
}

// Create validates the scheduled time against the owning stop's date
// range immediately before the write.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Activity, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if input.StopID == "" {
		return nil, fmt.Errorf("%w: stop id is required", ErrInvalidInput)
	}

	window, err := s.repo.GetStopWindow(ctx, input.StopID)
	if err != nil {
		return nil, err
	}
	if !window.Contains(input.ScheduledAt) {
		return nil, ErrScheduleOutOfRange
	}

	item := Activity{
		ID:           uuid.NewString(),
		StopID:       input.StopID,
		Title:        title,
		Description:  input.Description,
		ScheduledAt:  input.ScheduledAt,
		LocationName: input.LocationName,
		ExternalLink: input.ExternalLink,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(item.ID)
	s.cache.Set(DetailKey(item.ID), item)
	return &item, nil
}

// Update applies a partial update. The effective scheduled time is
// re-validated against the stop's current date range even when the
// timestamp itself is unchanged, since the range may have moved.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Activity, error) {
	item, err := s.repo.GetByID(ctx, input.ID)
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
		item.Description = input.Description.Value
	}
	if input.ScheduledAt != nil {
		item.ScheduledAt = *input.ScheduledAt
	}
	if input.LocationName.Set {
		item.LocationName = input.LocationName.Value
	}
	if input.ExternalLink.Set {
		item.ExternalLink = input.ExternalLink.Value
	}

	window, err := s.repo.GetStopWindow(ctx, item.StopID)
	if err != nil {
		return nil, err
	}
	if !window.Contains(item.ScheduledAt) {
		return nil, ErrScheduleOutOfRange
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(item.ID)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrActivityNotFound
	}

	s.invalidateAfterWrite(id)
	return nil
}

func (s *Service) invalidateAfterWrite(id string) {
	s.cache.Invalidate(ListsKey(), DetailKey(id))
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	return title, nil
}
