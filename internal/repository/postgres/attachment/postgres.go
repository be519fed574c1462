package attachment

import (
	"context"
	"errors"
	"fmt"

	attachmentdomain "trip-planner-go/internal/domain/attachment"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func ownerColumn(entityType attachmentdomain.EntityType) (string, error) {
	switch entityType {
	case attachmentdomain.EntityItinerary:
		return "itinerary_id", nil
	case attachmentdomain.EntityStop:
		return "stop_id", nil
	case attachmentdomain.EntityActivity:
		return "activity_id", nil
	case attachmentdomain.EntityAccommodation:
		return "accommodation_id", nil
	case attachmentdomain.EntityNote:
		return "note_id", nil
	}
	return "", fmt.Errorf("%w: %q", attachmentdomain.ErrUnknownEntity, entityType)
}

func (r *PostgresRepository) ListForEntity(ctx context.Context, entityType attachmentdomain.EntityType, entityID string) ([]attachmentdomain.Attachment, error) {
	column, err := ownerColumn(entityType)
	if err != nil {
		return nil, err
	}

	var items []attachmentdomain.Attachment
	if err := r.db.WithContext(ctx).
		Where(column+" = ?", entityID).
		Order("uploaded_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*attachmentdomain.Attachment, error) {
	var item attachmentdomain.Attachment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attachmentdomain.ErrAttachmentNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *attachmentdomain.Attachment) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&attachmentdomain.Attachment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
