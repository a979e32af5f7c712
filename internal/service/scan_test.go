package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/heart-badge/internal/badge"
	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/notify"
	"github.com/d60-Lab/heart-badge/internal/repository"
)

// testEnv 整条链路的测试装配：sqlite 事实来源 + miniredis 缓存。
type testEnv struct {
	mr            *miniredis.Miniredis
	badges        repository.BadgeRepository
	userBadges    repository.UserBadgeRepository
	interactions  repository.InteractionRepository
	notifications repository.NotificationRepository
	counters      *counter.Service
	evaluator     *badge.Evaluator
	deduper       *notify.Deduper
	scanner       *Scanner
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Badge{}, &model.UserBadge{}, &model.Interaction{}, &model.Notification{}))
	catalog := model.Catalog()
	require.NoError(t, db.Create(&catalog).Error)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	env := &testEnv{
		mr:            mr,
		badges:        repository.NewBadgeRepository(db),
		userBadges:    repository.NewUserBadgeRepository(db),
		interactions:  repository.NewInteractionRepository(db),
		notifications: repository.NewNotificationRepository(db),
	}
	env.counters = counter.NewService(counter.NewCache(rdb), env.interactions, time.Second)
	env.evaluator = badge.NewEvaluator(badge.NewRules(env.counters, env.badges))
	env.deduper = notify.NewDeduper(rdb, 24*time.Hour)
	env.scanner = NewScanner(env.badges, env.userBadges, env.notifications, env.evaluator, env.deduper, 24*time.Hour, 16)
	return env
}

func (e *testEnv) sendHearts(t *testing.T, sender string, badgeID int64, receiver string, n int) {
	t.Helper()
	svc := NewInteractionService(e.interactions, e.badges, e.counters, nil)
	for i := 0; i < n; i++ {
		_, err := svc.Record(context.Background(), badgeID, &sender, receiver)
		require.NoError(t, err)
	}
}

func TestScanUser_NotifiesOnceWithinWindow(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.sendHearts(t, "u1", model.BadgeBlue, "u2", 5)

	require.NoError(t, env.scanner.ScanUser(ctx, "u1"))
	list, err := env.notifications.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, model.BadgeMincho, list[0].BadgeID)
	require.Contains(t, list[0].Content, "Mincho")

	// 窗口内再扫不重复提醒
	require.NoError(t, env.scanner.ScanUser(ctx, "u1"))
	list, err = env.notifications.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestScanUser_NotifiesAgainAfterWindow(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.sendHearts(t, "u1", model.BadgeBlue, "u2", 5)

	require.NoError(t, env.scanner.ScanUser(ctx, "u1"))
	env.mr.FastForward(24*time.Hour + time.Minute)
	require.NoError(t, env.scanner.ScanUser(ctx, "u1"))

	list, err := env.notifications.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestScanUser_SkipsOwnedBadges(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.sendHearts(t, "u1", model.BadgeBlue, "u2", 5)
	require.NoError(t, env.userBadges.Create(ctx, "u1", model.BadgeMincho))

	require.NoError(t, env.scanner.ScanUser(ctx, "u1"))
	list, err := env.notifications.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestScanUser_ReceiverSideRule(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	// u2 收到 3 个 Sunny → Ice Cream 可得
	env.sendHearts(t, "u1", model.BadgeSunny, "u2", 3)

	require.NoError(t, env.scanner.ScanUser(ctx, "u2"))
	list, err := env.notifications.ListActive(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, model.BadgeIceCream, list[0].BadgeID)
}

func TestScanUser_NothingSatisfiedNoNoise(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	env.sendHearts(t, "u1", model.BadgeBlue, "u2", 2)

	require.NoError(t, env.scanner.ScanUser(ctx, "u1"))
	list, err := env.notifications.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, list)
}
