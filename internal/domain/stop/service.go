package stop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

func (s *Service) List(ctx context.Context, itineraryID string) ([]Stop, error) {
	key := ListKey(itineraryID)
	if items, ok := cache.GetTyped[[]Stop](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Stop, error) {
	key := DetailKey(id)
	if item, ok := cache.GetTyped[Stop](s.cache, key); ok {
		return &item, nil
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *item)
	return item, nil
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Stop, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.LocationName == nil || strings.TrimSpace(*input.LocationName) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if err := validateDateOrder(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	item := Stop{
		ID:           uuid.NewString(),
		ItineraryID:  input.ItineraryID,
		ParentStopID: input.ParentStopID,
		Title:        title,
		Description:  input.Description,
		LocationName: input.LocationName,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Order:        input.Order,
		ImageURL:     input.ImageURL,
	}

	if item.ParentStopID != nil {
		if err := s.validateParent(ctx, s.repo, &item); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ListKey(item.ItineraryID))
	s.cache.Set(DetailKey(item.ID), item)
	return &item, nil
}

// Update applies a partial update. When AccommodationID is present in the
// input the bidirectional link is synchronized: the stop row is written
// first, then the accommodation back-reference. Linking clears the
// accommodation_id of any other stop referencing the same accommodation;
// unlinking clears stop_id on every accommodation pointing at this stop.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Stop, error) {
	item, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		item.Title = title
	}
	if input.Description.Set {
		item.Description = input.Description.Value
	}
	if input.LocationName.Set {
		if input.LocationName.Value == nil || strings.TrimSpace(*input.LocationName.Value) == "" {
			return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
		}
		item.LocationName = input.LocationName.Value
	}
	if input.StartDate.Set {
		item.StartDate = input.StartDate.Value
	}
	if input.EndDate.Set {
		item.EndDate = input.EndDate.Value
	}
	if input.Order != nil {
		item.Order = input.Order
	}
	if input.ImageURL.Set {
		item.ImageURL = input.ImageURL.Value
	}
	if err := validateDateOrder(item.StartDate, item.EndDate); err != nil {
		return nil, err
	}

	if input.ParentStopID.Set {
		item.ParentStopID = input.ParentStopID.Value
		if item.ParentStopID != nil {
			if err := s.validateParent(ctx, s.repo, item); err != nil {
				return nil, err
			}
		}
	}

	if !input.AccommodationID.Set {
		if err := s.repo.Update(ctx, item); err != nil {
			return nil, err
		}
		s.invalidateAfterWrite(item)
		return item, nil
	}

	item.AccommodationID = input.AccommodationID.Value
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Update(ctx, item); err != nil {
			return err
		}
		if item.AccommodationID != nil {
			found, err := tx.SetAccommodationStop(ctx, *item.AccommodationID, &item.ID)
			if err != nil {
				return err
			}
			if !found {
				return ErrAccommodationNotFound
			}
			return tx.ClearStopsPointingAt(ctx, *item.AccommodationID, item.ID)
		}
		return tx.ClearAccommodationsPointingAt(ctx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(item)
	s.cache.Invalidate(cache.NewKey("accommodations"))
	return item, nil
}

// Delete cascades in strict order: attachment rows referencing the stop,
// then direct child stops, then the stop itself. Accommodations are not
// touched; one that pointed at the deleted stop keeps a dangling stop_id.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.DeleteAttachmentsByStop(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteChildren(ctx, id); err != nil {
			return err
		}
		deleted, err := tx.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrStopNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ListKey(item.ItineraryID), DetailKey(id), cache.NewKey("attachments"))
	return nil
}

func (s *Service) validateParent(ctx context.Context, repo Repository, item *Stop) error {
	parentID := *item.ParentStopID
	if parentID == item.ID {
		return fmt.Errorf("%w: a stop cannot be its own parent", ErrInvalidInput)
	}

	parent, err := repo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, ErrStopNotFound) {
			return ErrParentStopNotFound
		}
		return err
	}
	if parent.ItineraryID != item.ItineraryID {
		return ErrParentOtherItinerary
	}
	if parent.ParentStopID != nil {
		return ErrNestedChildStop
	}

	if item.ID != "" {
		children, err := repo.CountChildren(ctx, item.ID)
		if err != nil {
			return err
		}
		if children > 0 {
			return ErrParentHasChildren
		}
	}
	return nil
}

func (s *Service) invalidateAfterWrite(item *Stop) {
	s.cache.Invalidate(ListKey(item.ItineraryID), DetailKey(item.ID))
}

func validateDateOrder(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidInput)
	}
	return nil
}
