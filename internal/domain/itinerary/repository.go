package itinerary

import "context"

// Repository reads are scoped to itineraries the user owns or
// collaborates on; writes stay owner-filtered, role enforcement
// happens in the service.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Itinerary, error)
	GetByID(ctx context.Context, userID, id string) (*Itinerary, error)
	AccessRole(ctx context.Context, userID, id string) (string, error)
	Create(ctx context.Context, itinerary *Itinerary) error
	Update(ctx context.Context, itinerary *Itinerary) error
	Delete(ctx context.Context, userID, id string) (bool, error)
}
