package activity

import "context"

type Repository interface {
	ListByStop(ctx context.Context, stopID string) ([]Activity, error)
	ListByItinerary(ctx context.Context, itineraryID string) ([]Activity, error)
	GetByID(ctx context.Context, id string) (*Activity, error)
	Create(ctx context.Context, item *Activity) error
	Update(ctx context.Context, item *Activity) error
	Delete(ctx context.Context, id string) (bool, error)

	// GetStopWindow returns the stop's date range, or ErrStopNotFound
	// when the stop does not exist.
	GetStopWindow(ctx context.Context, stopID string) (*Window, error)
}
