package activity

import (
	"context"
	"errors"

	activitydomain "trip-planner-go/internal/domain/activity"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByStop(ctx context.Context, stopID string) ([]activitydomain.Activity, error) {
	var items []activitydomain.Activity
	if err := r.db.WithContext(ctx).
		Where("stop_id = ?", stopID).
		Order("scheduled_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]activitydomain.Activity, error) {
	var items []activitydomain.Activity
	if err := r.db.WithContext(ctx).
		Joins("join stops on stops.id = activities.stop_id").
		Where("stops.itinerary_id = ?", itineraryID).
		Order("activities.scheduled_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*activitydomain.Activity, error) {
	var item activitydomain.Activity
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, activitydomain.ErrActivityNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *activitydomain.Activity) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) Update(ctx context.Context, item *activitydomain.Activity) error {
	return r.db.WithContext(ctx).
		Model(&activitydomain.Activity{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"title":         item.Title,
			"description":   item.Description,
			"scheduled_at":  item.ScheduledAt,
			"location_name": item.LocationName,
			"external_link": item.ExternalLink,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&activitydomain.Activity{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) GetStopWindow(ctx context.Context, stopID string) (*activitydomain.Window, error) {
	var window activitydomain.Window
	err := r.db.WithContext(ctx).
		Table("stops").
		Select(`start_date as "start", end_date as "end"`).
		Where("id = ?", stopID).
		Take(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, activitydomain.ErrStopNotFound
		}
		return nil, err
	}
	return &window, nil
}
