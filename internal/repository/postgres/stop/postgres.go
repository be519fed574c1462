package stop

import (
	"context"
	"errors"

	attachmentdomain "trip-planner-go/internal/domain/attachment"
	stopdomain "trip-planner-go/internal/domain/stop"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(stopdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]stopdomain.Stop, error) {
	var items []stopdomain.Stop
	if err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Order(`"order" asc, created_at asc`).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*stopdomain.Stop, error) {
	var item stopdomain.Stop
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stopdomain.ErrStopNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *stopdomain.Stop) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) Update(ctx context.Context, item *stopdomain.Stop) error {
	return r.db.WithContext(ctx).
		Model(&stopdomain.Stop{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"title":            item.Title,
			"description":      item.Description,
			"location_name":    item.LocationName,
			"start_date":       item.StartDate,
			"end_date":         item.EndDate,
			"order":            item.Order,
			"image_url":        item.ImageURL,
			"parent_stop_id":   item.ParentStopID,
			"accommodation_id": item.AccommodationID,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&stopdomain.Stop{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) CountChildren(ctx context.Context, stopID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stopdomain.Stop{}).
		Where("parent_stop_id = ?", stopID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) DeleteChildren(ctx context.Context, parentStopID string) error {
	return r.db.WithContext(ctx).
		Where("parent_stop_id = ?", parentStopID).
		Delete(&stopdomain.Stop{}).Error
}

func (r *PostgresRepository) DeleteAttachmentsByStop(ctx context.Context, stopID string) error {
	return r.db.WithContext(ctx).
		Where("stop_id = ?", stopID).
		Delete(&attachmentdomain.Attachment{}).Error
}

func (r *PostgresRepository) SetAccommodationStop(ctx context.Context, accommodationID string, stopID *string) (bool, error) {
	result := r.db.WithContext(ctx).
		Table("accommodations").
		Where("id = ?", accommodationID).
		Update("stop_id", stopID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ClearAccommodationsPointingAt(ctx context.Context, stopID string) error {
	return r.db.WithContext(ctx).
		Table("accommodations").
		Where("stop_id = ?", stopID).
		Update("stop_id", nil).Error
}

func (r *PostgresRepository) ClearStopsPointingAt(ctx context.Context, accommodationID, excludeStopID string) error {
	return r.db.WithContext(ctx).
		Model(&stopdomain.Stop{}).
		Where("accommodation_id = ? AND id <> ?", accommodationID, excludeStopID).
		Update("accommodation_id", nil).Error
}
