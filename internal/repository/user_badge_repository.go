package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/heart-badge/internal/model"
)

type UserBadgeRepository interface {
	Create(ctx context.Context, userID string, badgeID int64) error
	Exists(ctx context.Context, userID string, badgeID int64) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.UserBadge, error)
}

type userBadgeRepository struct{ db *gorm.DB }

func NewUserBadgeRepository(db *gorm.DB) UserBadgeRepository { return &userBadgeRepository{db: db} }

func (r *userBadgeRepository) Create(ctx context.Context, userID string, badgeID int64) error {
	ub := &model.UserBadge{ID: uuid.New().String(), UserID: userID, BadgeID: badgeID, AcquiredAt: time.Now()}
	// 幂等：同一 (user, badge) 只会有一条记录
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(ub).Error
}

func (r *userBadgeRepository) Exists(ctx context.Context, userID string, badgeID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.UserBadge{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *userBadgeRepository) ListByUser(ctx context.Context, userID string) ([]model.UserBadge, error) {
	var res []model.UserBadge
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("badge_id").Find(&res).Error
	return res, err
}
