package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/heart-badge/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, userID string, badgeID int64, content string, ttl time.Duration) (*model.Notification, error)
	ListActive(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, userID string, badgeID int64, content string, ttl time.Duration) (*model.Notification, error) {
	n := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		BadgeID:   badgeID,
		Content:   content,
		IsActive:  true,
		ExpiredAt: time.Now().Add(ttl),
	}
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) ListActive(ctx context.Context, userID string) ([]model.Notification, error) {
	var res []model.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("is_read", true).Error
}

func (r *notificationRepository) Deactivate(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).Update("is_active", false).Error
}
