package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper 限定时间窗内的通知去重：存在抑制标记就不再提醒。
// 标记自动过期，不需要清理任务。
type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Deduper{rdb: rdb, ttl: ttl}
}

func markKey(userID string, badgeID int64) string {
	return fmt.Sprintf("notified:%s:%d", userID, badgeID)
}

// AlreadyNotified reports whether a live suppression mark exists.
func (d *Deduper) AlreadyNotified(ctx context.Context, userID string, badgeID int64) (bool, error) {
	n, err := d.rdb.Exists(ctx, markKey(userID, badgeID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkNotified creates the suppression mark. The write is set-if-absent
// so two racing scans cannot both decide to notify; it returns whether
// this caller won the mark.
func (d *Deduper) MarkNotified(ctx context.Context, userID string, badgeID int64) (bool, error) {
	return d.rdb.SetNX(ctx, markKey(userID, badgeID), "1", d.ttl).Result()
}
