package counter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/heart-badge/pkg/logger"
)

// ErrUnavailable 回源聚合失败或超时；调用方应跳过本轮重试，而不是崩溃。
var ErrUnavailable = errors.New("counter store unavailable")

// Store 持久层计数聚合（事实来源）。返回的 map 覆盖目录里的全部徽章 id。
type Store interface {
	SentCounts(ctx context.Context, userID string) (map[int64]int64, error)
	ReceivedCounts(ctx context.Context, userID string) (map[int64]int64, error)
	MaxSentToSameReceiver(ctx context.Context, userID string, badgeID int64) (int64, error)
}

// Service 计数读写的唯一入口：读穿缓存，miss 时按 (direction, user)
// 从事实来源回填（lazy rehydration），对上层始终透明。
type Service struct {
	cache   *Cache
	store   Store
	timeout time.Duration
}

func NewService(cache *Cache, store Store, storeTimeout time.Duration) *Service {
	if storeTimeout <= 0 {
		storeTimeout = 3 * time.Second
	}
	return &Service{cache: cache, store: store, timeout: storeTimeout}
}

// GetCount 返回某用户某徽章的计数；缓存 miss 时同步回填。
func (s *Service) GetCount(ctx context.Context, d Direction, userID string, badgeID int64) (int64, error) {
	v, ok, err := s.cache.Get(ctx, d, userID, badgeID)
	if err != nil {
		// 缓存故障退化为 miss，继续走事实来源
		logger.Warn("counter cache read failed, falling back to store",
			zap.String("direction", string(d)), zap.String("user", userID), zap.Error(err))
	} else if ok {
		return v, nil
	}

	counts, err := s.rehydrate(ctx, d, userID)
	if err != nil {
		return 0, err
	}
	return counts[badgeID], nil
}

// RecordInteraction 在互动已持久化之后调用，增量维护缓存计数。
// key 不存在不是错误：此时事实来源已包含这次互动，整体回填即可，
// 自增被回填值隐含满足（不会少记也不会多记）。
func (s *Service) RecordInteraction(ctx context.Context, d Direction, userID string, badgeID int64) error {
	_, err := s.cache.Increment(ctx, d, userID, badgeID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrKeyAbsent) {
		logger.Warn("counter increment failed, rehydrating",
			zap.String("direction", string(d)), zap.String("user", userID), zap.Error(err))
	}
	_, err = s.rehydrate(ctx, d, userID)
	return err
}

// MaxSentToSameReceiver 按接收方分组的最大计数，无法由扁平计数回答，
// 直接走事实来源。
func (s *Service) MaxSentToSameReceiver(ctx context.Context, userID string, badgeID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	n, err := s.store.MaxSentToSameReceiver(ctx, userID, badgeID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}

func (s *Service) rehydrate(ctx context.Context, d Direction, userID string) (map[int64]int64, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		counts map[int64]int64
		err    error
	)
	switch d {
	case DirectionSent:
		counts, err = s.store.SentCounts(storeCtx, userID)
	case DirectionReceived:
		counts, err = s.store.ReceivedCounts(storeCtx, userID)
	default:
		return nil, fmt.Errorf("unknown counter direction %q", d)
	}
	if err != nil {
		logger.Error("counter rehydration failed",
			zap.String("direction", string(d)), zap.String("user", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := s.cache.Warm(ctx, d, userID, counts); err != nil {
		// 回填写缓存失败只降级，不影响本次读取的正确性
		logger.Warn("counter cache warm failed",
			zap.String("direction", string(d)), zap.String("user", userID), zap.Error(err))
	}
	return counts, nil
}
