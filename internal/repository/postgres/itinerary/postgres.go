package itinerary

import (
	"context"
	"errors"

	itinerarydomain "trip-planner-go/internal/domain/itinerary"

	"gorm.io/gorm"
)

// memberFilter matches itineraries shared with the user through an
// accepted invite.
const memberFilter = "id IN (SELECT itinerary_id FROM itinerary_collaborators WHERE user_id = ?)"

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]itinerarydomain.Itinerary, error) {
	var items []itinerarydomain.Itinerary
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR "+memberFilter, userID, userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*itinerarydomain.Itinerary, error) {
	var item itinerarydomain.Itinerary
	if err := r.db.WithContext(ctx).
		Where("id = ? AND (user_id = ? OR "+memberFilter+")", id, userID, userID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itinerarydomain.ErrItineraryNotFound
		}
		return nil, err
	}
	return &item, nil
}

// AccessRole resolves the user's role on the itinerary. Users with no
// access get ErrItineraryNotFound, same as a missing row.
func (r *PostgresRepository) AccessRole(ctx context.Context, userID, id string) (string, error) {
	var ownerID string
	err := r.db.WithContext(ctx).
		Model(&itinerarydomain.Itinerary{}).
		Select("user_id").
		Where("id = ?", id).
		Take(&ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", itinerarydomain.ErrItineraryNotFound
		}
		return "", err
	}
	if ownerID == userID {
		return itinerarydomain.RoleOwner, nil
	}

	var role string
	err = r.db.WithContext(ctx).
		Table("itinerary_collaborators").
		Select("role").
		Where("itinerary_id = ? AND user_id = ?", id, userID).
		Take(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", itinerarydomain.ErrItineraryNotFound
		}
		return "", err
	}
	return role, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *itinerarydomain.Itinerary) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) Update(ctx context.Context, item *itinerarydomain.Itinerary) error {
	return r.db.WithContext(ctx).
		Model(&itinerarydomain.Itinerary{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"title":       item.Title,
			"description": item.Description,
			"start_date":  item.StartDate,
			"end_date":    item.EndDate,
			"is_public":   item.IsPublic,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&itinerarydomain.Itinerary{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
