package accommodation

import (
	"context"
	"errors"

	accommodationdomain "trip-planner-go/internal/domain/accommodation"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(accommodationdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]accommodationdomain.Accommodation, error) {
	var items []accommodationdomain.Accommodation
	if err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*accommodationdomain.Accommodation, error) {
	var item accommodationdomain.Accommodation
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accommodationdomain.ErrAccommodationNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *accommodationdomain.Accommodation) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) Update(ctx context.Context, item *accommodationdomain.Accommodation) error {
	return r.db.WithContext(ctx).
		Model(&accommodationdomain.Accommodation{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"address":       item.Address,
			"external_link": item.ExternalLink,
			"notes":         item.Notes,
			"stop_id":       item.StopID,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&accommodationdomain.Accommodation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) GetStopItinerary(ctx context.Context, stopID string) (string, error) {
	var itineraryID string
	err := r.db.WithContext(ctx).
		Table("stops").
		Select("itinerary_id").
		Where("id = ?", stopID).
		Take(&itineraryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", accommodationdomain.ErrStopNotFound
		}
		return "", err
	}
	return itineraryID, nil
}

func (r *PostgresRepository) SetStopAccommodation(ctx context.Context, stopID string, accommodationID *string) (bool, error) {
	result := r.db.WithContext(ctx).
		Table("stops").
		Where("id = ?", stopID).
		Update("accommodation_id", accommodationID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ClearStopsPointingAt(ctx context.Context, accommodationID string) error {
	return r.db.WithContext(ctx).
		Table("stops").
		Where("accommodation_id = ?", accommodationID).
		Update("accommodation_id", nil).Error
}

func (r *PostgresRepository) ClearOtherStopsPointingAt(ctx context.Context, accommodationID, excludeStopID string) error {
	return r.db.WithContext(ctx).
		Table("stops").
		Where("accommodation_id = ? AND id <> ?", accommodationID, excludeStopID).
		Update("accommodation_id", nil).Error
}

func (r *PostgresRepository) ClearAccommodationsPointingAtStop(ctx context.Context, stopID, excludeAccommodationID string) error {
	return r.db.WithContext(ctx).
		Model(&accommodationdomain.Accommodation{}).
		Where("stop_id = ? AND id <> ?", stopID, excludeAccommodationID).
		Update("stop_id", nil).Error
}
