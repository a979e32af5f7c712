package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/repository"
	"github.com/d60-Lab/heart-badge/pkg/logger"
)

// NotificationService 通知读取口：列表时顺手熄灭过期通知。
type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List 返回未过期的活跃通知（新的在前）；过期的就地失效，不再返回。
func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	all, err := s.notifications.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	res := make([]model.Notification, 0, len(all))
	for _, n := range all {
		if n.ExpiredAt.After(now) {
			res = append(res, n)
			continue
		}
		if err := s.notifications.Deactivate(ctx, n.ID); err != nil {
			logger.Warn("expired notification not deactivated", zap.String("id", n.ID), zap.Error(err))
		}
	}
	return res, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.notifications.MarkRead(ctx, id)
}
