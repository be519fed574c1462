package attachment

import (
	"context"
	"io"
)

type Repository interface {
	ListForEntity(ctx context.Context, entityType EntityType, entityID string) ([]Attachment, error)
	GetByID(ctx context.Context, id string) (*Attachment, error)
	Create(ctx context.Context, item *Attachment) error
	Delete(ctx context.Context, id string) (bool, error)
}

// ObjectStore holds the file bytes separately from the attachment rows.
// Save returns the public URL the stored object is reachable at.
type ObjectStore interface {
	Save(ctx context.Context, objectPath string, content io.Reader) (string, error)
	Remove(ctx context.Context, objectPath string) error
}
