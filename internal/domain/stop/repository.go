package stop

import "context"

// Repository covers the stops collection plus the narrow writes the
// synchronization rules make against neighbouring collections
// (accommodations back-references, attachment rows owned by a stop).
type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListByItinerary(ctx context.Context, itineraryID string) ([]Stop, error)
	GetByID(ctx context.Context, id string) (*Stop, error)
	Create(ctx context.Context, stop *Stop) error
	Update(ctx context.Context, stop *Stop) error
	Delete(ctx context.Context, id string) (bool, error)

	CountChildren(ctx context.Context, stopID string) (int64, error)
	DeleteChildren(ctx context.Context, parentStopID string) error
	DeleteAttachmentsByStop(ctx context.Context, stopID string) error

	// SetAccommodationStop writes accommodations.stop_id for one
	// accommodation and reports whether the row existed.
	SetAccommodationStop(ctx context.Context, accommodationID string, stopID *string) (bool, error)
	// ClearAccommodationsPointingAt nulls accommodations.stop_id on every
	// accommodation whose stop_id equals stopID.
	ClearAccommodationsPointingAt(ctx context.Context, stopID string) error
	// ClearStopsPointingAt nulls stops.accommodation_id on every stop other
	// than excludeStopID that references accommodationID.
	ClearStopsPointingAt(ctx context.Context, accommodationID, excludeStopID string) error
}
