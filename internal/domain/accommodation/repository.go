package accommodation

import "context"

// Repository covers the accommodations collection plus the stop-side
// writes the bidirectional link synchronization needs.
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListByItinerary(ctx context.Context, itineraryID string) ([]Accommodation, error)
	GetByID(ctx context.Context, id string) (*Accommodation, error)
	Create(ctx context.Context, accommodation *Accommodation) error
	Update(ctx context.Context, accommodation *Accommodation) error
	Delete(ctx context.Context, id string) (bool, error)

	// GetStopItinerary resolves the itinerary a stop belongs to.
	GetStopItinerary(ctx context.Context, stopID string) (string, error)
	// SetStopAccommodation writes stops.accommodation_id for one stop and
	// reports whether the row existed.
	SetStopAccommodation(ctx context.Context, stopID string, accommodationID *string) (bool, error)
	// ClearStopsPointingAt nulls stops.accommodation_id on every stop
	// referencing accommodationID.
	ClearStopsPointingAt(ctx context.Context, accommodationID string) error
	// ClearOtherStopsPointingAt is the same sweep excluding one stop.
	ClearOtherStopsPointingAt(ctx context.Context, accommodationID, excludeStopID string) error
	// ClearAccommodationsPointingAtStop nulls stop_id on every other
	// accommodation referencing stopID.
	ClearAccommodationsPointingAtStop(ctx context.Context, stopID, excludeAccommodationID string) error
}
