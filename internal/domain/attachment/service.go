package attachment

import (
	"context"
	"fmt"
	"io"
	"path"

	"trip-planner-go/internal/cache"
	"trip-planner-go/pkg/logger"

	"github.com/google/uuid"
)

type Service struct {
	repo        Repository
	store       ObjectStore
	cache       cache.QueryCache
	log         logger.Logger
	maxFileSize int64
}

func NewService(repo Repository, store ObjectStore, queryCache cache.QueryCache, log logger.Logger, maxFileSize int64) *Service {
	if queryCache == nil {
		queryCache = cache.Noop{}
	}
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Service{repo: repo, store: store, cache: queryCache, log: log, maxFileSize: maxFileSize}
}

func (s *Service) ListForEntity(ctx context.Context, entityType EntityType, entityID string) ([]Attachment, error) {
	if !entityType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, entityType)
	}

	key := EntityListKey(entityType, entityID)
	if items, ok := cache.GetTyped[[]Attachment](s.cache, key); ok {
		return items, nil
	}

	items, err := s.repo.ListForEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, items)
	return items, nil
}

// Upload stores the file bytes, then inserts the attachment row pointing
// at the owning entity. When the row insert fails the stored object is
// removed again so no orphan bytes accumulate.
func (s *Service) Upload(ctx context.Context, input UploadInput, content io.Reader) (*Attachment, error) {
	if !input.EntityType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, input.EntityType)
	}
	if input.EntityID == "" || input.UserID == "" {
		return nil, fmt.Errorf("%w: user and entity ids are required", ErrInvalidInput)
	}
	if input.Filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if err := ValidateFile(input.Size, s.maxFileSize, input.ContentType); err != nil {
		return nil, err
	}

	unique := uuid.NewString() + path.Ext(input.Filename)
	objectPath := StoragePath(input.UserID, input.EntityType, input.EntityID, unique)

	url, err := s.store.Save(ctx, objectPath, content)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	item := Attachment{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		URL:      url,
		Type:     FileTypeFor(input.ContentType, input.Filename),
		Filename: input.Filename,
	}
	item.SetOwner(input.EntityType, input.EntityID)

	if err := s.repo.Create(ctx, &item); err != nil {
		if removeErr := s.store.Remove(ctx, objectPath); removeErr != nil {
			s.log.Warn("orphaned object after failed attachment insert",
				"path", objectPath, "error", removeErr)
		}
		return nil, err
	}

	s.cache.Invalidate(EntityListKey(input.EntityType, input.EntityID))
	return &item, nil
}

// Delete removes the stored object first, then the row. A storage
// failure aborts so the row keeps pointing at an object that still
// exists.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	objectPath, err := PathFromURL(item.URL)
	if err != nil {
		return err
	}
	if err := s.store.Remove(ctx, objectPath); err != nil {
		return fmt.Errorf("store remove: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAttachmentNotFound
	}

	s.cache.Invalidate(KeyPrefix())
	return nil
}
