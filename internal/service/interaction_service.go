package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/repository"
	"github.com/d60-Lab/heart-badge/pkg/logger"
)

// InteractionService 互动写入口：先持久化，再增量维护计数缓存，
// 最后把相关用户排入徽章扫描队列。
type InteractionService struct {
	interactions repository.InteractionRepository
	badges       repository.BadgeRepository
	counters     *counter.Service
	scanner      *Scanner
}

func NewInteractionService(
	interactions repository.InteractionRepository,
	badges repository.BadgeRepository,
	counters *counter.Service,
	scanner *Scanner,
) *InteractionService {
	return &InteractionService{interactions: interactions, badges: badges, counters: counters, scanner: scanner}
}

// Record 记录一次互动。senderID 为 nil 表示匿名发送，只产生 received 计数。
// 计数必须在互动持久化之后更新：缓存 miss 自愈依赖事实来源已包含本次互动。
func (s *InteractionService) Record(ctx context.Context, badgeID int64, senderID *string, receiverID string) (*model.Interaction, error) {
	if _, err := s.badges.FindByID(ctx, badgeID); err != nil {
		return nil, err
	}

	it, err := s.interactions.Create(ctx, badgeID, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	// 计数降级不影响互动本身：回源不可用时缓存会在下次读取时自愈
	if err := s.counters.RecordInteraction(ctx, counter.DirectionReceived, receiverID, badgeID); err != nil {
		logger.Warn("received count not updated",
			zap.String("user", receiverID), zap.Int64("badge", badgeID), zap.Error(err))
	}
	if senderID != nil {
		if err := s.counters.RecordInteraction(ctx, counter.DirectionSent, *senderID, badgeID); err != nil {
			logger.Warn("sent count not updated",
				zap.String("user", *senderID), zap.Int64("badge", badgeID), zap.Error(err))
		}
	}

	if s.scanner != nil {
		s.scanner.Enqueue(receiverID)
		if senderID != nil {
			s.scanner.Enqueue(*senderID)
		}
	}
	return it, nil
}
