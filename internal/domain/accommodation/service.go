package accommodation

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

func (s *Service) List(ctx context.Context, itineraryID string) ([]Accommodation, error) {
	key := ListKey(itineraryID)
	if items, ok := cache.GetTyped[[]Accommodation](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListByItinerary(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Accommodation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	key := DetailKey(id)
	if item, ok := cache.GetTyped[Accommodation](s.cache, key); ok {
		return &item, nil
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *item)
	return item, nil
}

// CreateForStop inserts an accommodation linked to stopID, resolving the
// itinerary from the stop, then back-fills the stop's accommodation_id.
// The accommodation row is written first; the back-reference follows
// inside the same store transaction.
func (s *Service) CreateForStop(ctx context.Context, stopID string, input CreateInput) (*Accommodation, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	var item Accommodation
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		itineraryID, err := tx.GetStopItinerary(ctx, stopID)
		if err != nil {
			return err
		}

		item = Accommodation{
			ID:           uuid.NewString(),
			StopID:       &stopID,
			ItineraryID:  itineraryID,
			Name:         name,
			Address:      input.Address,
			ExternalLink: input.ExternalLink,
			Notes:        input.Notes,
		}
		if err := tx.Create(ctx, &item); err != nil {
			return err
		}
		return s.linkStop(ctx, tx, &item, stopID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(&item)
	s.cache.Set(DetailKey(item.ID), item)
	return &item, nil
}

// CreateStandalone inserts an accommodation without requiring a stop.
// When the optional stop link is given, the stop is back-filled the same
// way CreateForStop does it.
func (s *Service) CreateStandalone(ctx context.Context, itineraryID string, input StandaloneCreateInput) (*Accommodation, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	item := Accommodation{
		ID:           uuid.NewString(),
		StopID:       input.StopID,
		ItineraryID:  itineraryID,
		Name:         name,
		Address:      input.Address,
		ExternalLink: input.ExternalLink,
		Notes:        input.Notes,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Create(ctx, &item); err != nil {
			return err
		}
		if input.StopID == nil {
			return nil
		}
		return s.linkStop(ctx, tx, &item, *input.StopID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(&item)
	s.cache.Set(DetailKey(item.ID), item)
	return &item, nil
}

// Update applies a partial update. When StopID is present the link is
// synchronized: the accommodation row is written first, then the stop
// side. A null StopID clears accommodation_id on every stop still
// pointing here, including rows left over from earlier partial writes.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Accommodation, error) {
	item, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		item.Name = name
	}
	if input.Address.Set {
		item.Address = input.Address.Value
	}
	if input.ExternalLink.Set {
		item.ExternalLink = input.ExternalLink.Value
	}
	if input.Notes.Set {
		item.Notes = input.Notes.Value
	}

	if !input.StopID.Set {
		if err := s.repo.Update(ctx, item); err != nil {
			return nil, err
		}
		s.invalidateAfterWrite(item)
		return item, nil
	}

	item.StopID = input.StopID.Value
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.Update(ctx, item); err != nil {
			return err
		}
		if item.StopID != nil {
			return s.linkStop(ctx, tx, item, *item.StopID)
		}
		return tx.ClearStopsPointingAt(ctx, item.ID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAfterWrite(item)
	return item, nil
}

// Delete clears the accommodation_id of any stop still pointing at the
// accommodation before removing the row, so no stop is left with a
// dangling reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.ClearStopsPointingAt(ctx, id); err != nil {
			return err
		}
		deleted, err := tx.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrAccommodationNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateAfterWrite(item)
	s.cache.Invalidate(DetailKey(id))
	return nil
}

// linkStop points stopID at the accommodation and sweeps both sides so
// the link stays one-to-one: other stops referencing this accommodation
// and other accommodations referencing this stop are unlinked.
func (s *Service) linkStop(ctx context.Context, tx Repository, item *Accommodation, stopID string) error {
	found, err := tx.SetStopAccommodation(ctx, stopID, &item.ID)
	if err != nil {
		return err
	}
	if !found {
		return ErrStopNotFound
	}
	if err := tx.ClearOtherStopsPointingAt(ctx, item.ID, stopID); err != nil {
		return err
	}
	return tx.ClearAccommodationsPointingAtStop(ctx, stopID, item.ID)
}

func (s *Service) invalidateAfterWrite(item *Accommodation) {
	s.cache.Invalidate(ListsKey(), DetailKey(item.ID), cache.NewKey("stops"))
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return name, nil
}
