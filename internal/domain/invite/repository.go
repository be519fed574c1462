package invite

import "context"

type Repository interface {
	ListByItinerary(ctx context.Context, itineraryID string) ([]Invite, error)
	ListPendingByEmail(ctx context.Context, email string) ([]Invite, error)
	GetByID(ctx context.Context, id string) (*Invite, error)
	Create(ctx context.Context, item *Invite) error
	Update(ctx context.Context, item *Invite) error
	Delete(ctx context.Context, id string) (bool, error)

	AddCollaborator(ctx context.Context, item *Collaborator) error
	HasCollaborator(ctx context.Context, itineraryID, userID string) (bool, error)
}
