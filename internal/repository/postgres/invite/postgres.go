package invite

import (
	"context"
	"errors"

	invitedomain "trip-planner-go/internal/domain/invite"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByItinerary(ctx context.Context, itineraryID string) ([]invitedomain.Invite, error) {
	var items []invitedomain.Invite
	if err := r.db.WithContext(ctx).
		Where("itinerary_id = ?", itineraryID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListPendingByEmail(ctx context.Context, email string) ([]invitedomain.Invite, error) {
	var items []invitedomain.Invite
	if err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, invitedomain.StatusPending).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*invitedomain.Invite, error) {
	var item invitedomain.Invite
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invitedomain.ErrInviteNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *invitedomain.Invite) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) Update(ctx context.Context, item *invitedomain.Invite) error {
	return r.db.WithContext(ctx).
		Model(&invitedomain.Invite{}).
		Where("id = ?", item.ID).
		Update("status", item.Status).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&invitedomain.Invite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) AddCollaborator(ctx context.Context, item *invitedomain.Collaborator) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *PostgresRepository) HasCollaborator(ctx context.Context, itineraryID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&invitedomain.Collaborator{}).
		Where("itinerary_id = ? AND user_id = ?", itineraryID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
