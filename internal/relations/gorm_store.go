package relations

import (
	"context"
	"errors"

	"socialnet/backend/internal/models"

	"gorm.io/gorm"
)

// gormStore is the production Store backed by the relational database.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store over a gorm database handle.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (g *gormStore) UserExists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (g *gormStore) Relation(ctx context.Context, fromID, toID uint) (*models.UserRelation, error) {
	var rel models.UserRelation
	err := g.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		First(&rel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRelationNotFound
		}
		return nil, err
	}
	return &rel, nil
}

func (g *gormStore) CreatePending(ctx context.Context, requesterID, targetID uint) error {
	rel := models.UserRelation{
		FromUserID: requesterID,
		ToUserID:   targetID,
		Status:     models.StatusPending,
	}
	return g.db.WithContext(ctx).Create(&rel).Error
}

func (g *gormStore) AcceptPending(ctx context.Context, requesterID, accepterID uint) error {
	// Both halves of the friendship are written inside one transaction so a
	// failure on the second write cannot leave the relationship asymmetric.
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserRelation{}).
			Where("from_user_id = ? AND to_user_id = ? AND status = ?",
				requesterID, accepterID, models.StatusPending).
			Update("status", models.StatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRelationNotFound
		}

		// The reverse edge may already exist as a pending cross-request;
		// flip it rather than colliding on the composite key.
		var reverse models.UserRelation
		err := tx.Where("from_user_id = ? AND to_user_id = ?", accepterID, requesterID).
			First(&reverse).Error
		switch {
		case err == nil:
			return tx.Model(&reverse).Update("status", models.StatusAccepted).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.UserRelation{
				FromUserID: accepterID,
				ToUserID:   requesterID,
				Status:     models.StatusAccepted,
			}).Error
		default:
			return err
		}
	})
}

func (g *gormStore) DeletePending(ctx context.Context, requesterID, declinerID uint) (bool, error) {
	result := g.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ? AND status = ?",
			requesterID, declinerID, models.StatusPending).
		Delete(&models.UserRelation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (g *gormStore) FriendsOf(ctx context.Context, userID uint) ([]models.User, error) {
	// Accepted friendships are stored in both directions, so one direction
	// is enough to enumerate them.
	var relations []models.UserRelation
	err := g.db.WithContext(ctx).
		Where("from_user_id = ? AND status = ?", userID, models.StatusAccepted).
		Preload("ToUser").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(relations))
	for _, rel := range relations {
		if rel.ToUser.ID == 0 {
			continue
		}
		friends = append(friends, rel.ToUser)
	}
	return friends, nil
}

func (g *gormStore) PendingFor(ctx context.Context, userID uint) ([]models.User, error) {
	var relations []models.UserRelation
	err := g.db.WithContext(ctx).
		Where("to_user_id = ? AND status = ?", userID, models.StatusPending).
		Preload("FromUser").
		Find(&relations).Error
	if err != nil {
		return nil, err
	}

	requesters := make([]models.User, 0, len(relations))
	for _, rel := range relations {
		if rel.FromUser.ID == 0 {
			continue
		}
		requesters = append(requesters, rel.FromUser)
	}
	return requesters, nil
}
