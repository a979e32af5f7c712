package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/heart-badge/internal/badge"
	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/notify"
	"github.com/d60-Lab/heart-badge/internal/repository"
	"github.com/d60-Lab/heart-badge/pkg/logger"
)

// Scanner 扫描一个用户的全部特殊徽章：规则满足且未在抑制窗口内，
// 落一条可获得通知并打抑制标记（每 (user, badge) 每 24h 至多一条）。
type Scanner struct {
	badges        repository.BadgeRepository
	userBadges    repository.UserBadgeRepository
	notifications repository.NotificationRepository
	evaluator     *badge.Evaluator
	deduper       *notify.Deduper
	notifyTTL     time.Duration

	ch chan string
}

func NewScanner(
	badges repository.BadgeRepository,
	userBadges repository.UserBadgeRepository,
	notifications repository.NotificationRepository,
	evaluator *badge.Evaluator,
	deduper *notify.Deduper,
	notifyTTL time.Duration,
	queueSize int,
) *Scanner {
	if queueSize <= 0 {
		queueSize = 10000
	}
	if notifyTTL <= 0 {
		notifyTTL = 24 * time.Hour
	}
	return &Scanner{
		badges:        badges,
		userBadges:    userBadges,
		notifications: notifications,
		evaluator:     evaluator,
		deduper:       deduper,
		notifyTTL:     notifyTTL,
		ch:            make(chan string, queueSize),
	}
}

// Enqueue 把用户排入异步扫描队列；队列满时丢弃并告警，绝不阻塞写路径。
func (s *Scanner) Enqueue(userID string) {
	select {
	case s.ch <- userID:
	default:
		logger.Warn("badge scan queue full, drop user", zap.String("user", userID))
	}
}

// Start 启动扫描 worker，返回停止函数。
func (s *Scanner) Start(workers int) func(context.Context) error {
	if workers <= 0 {
		workers = 4
	}
	stopCh := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case userID := <-s.ch:
					ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
					if err := s.ScanUser(ctx, userID); err != nil {
						logger.Warn("badge scan skipped", zap.String("user", userID), zap.Error(err))
					}
					cancel()
				case <-stopCh:
					return
				}
			}
		}()
	}
	return func(ctx context.Context) error {
		close(stopCh)
		timeout := time.After(2 * time.Second)
		for {
			select {
			case <-timeout:
				return nil
			default:
				if len(s.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

// ScanUser 同步扫描一个用户。计数回源不可用时返回错误（本轮跳过该用户，
// 下轮重试）；单个徽章的目录/规则配置错误只记日志，不影响其它徽章。
func (s *Scanner) ScanUser(ctx context.Context, userID string) error {
	specials, err := s.badges.FindByKind(ctx, model.KindSpecial)
	if err != nil {
		return err
	}
	for _, b := range specials {
		owned, err := s.userBadges.Exists(ctx, userID, b.ID)
		if err != nil {
			return err
		}
		if owned {
			continue
		}

		acquirable, err := s.evaluator.IsAcquirable(ctx, userID, b.ID)
		if err != nil {
			if errors.Is(err, counter.ErrUnavailable) {
				return err
			}
			// unregistered badge or unresolvable reference: loud, but
			// fatal only for this badge's evaluation
			logger.Error("badge evaluation failed",
				zap.String("user", userID), zap.Int64("badge", b.ID), zap.Error(err))
			continue
		}
		if !acquirable {
			continue
		}

		already, err := s.deduper.AlreadyNotified(ctx, userID, b.ID)
		if err != nil || already {
			continue
		}
		won, err := s.deduper.MarkNotified(ctx, userID, b.ID)
		if err != nil || !won {
			continue
		}
		content := fmt.Sprintf("You can acquire the %s badge!", b.Name)
		if _, err := s.notifications.Create(ctx, userID, b.ID, content, s.notifyTTL); err != nil {
			logger.Error("acquisition notification not recorded",
				zap.String("user", userID), zap.Int64("badge", b.ID), zap.Error(err))
			continue
		}
		logger.Info("acquisition notification recorded",
			zap.String("user", userID), zap.Int64("badge", b.ID))
	}
	return nil
}
