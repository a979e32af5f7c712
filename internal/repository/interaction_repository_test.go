package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/heart-badge/internal/model"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Badge{}, &model.UserBadge{}, &model.Interaction{}, &model.Notification{}))
	catalog := model.Catalog()
	require.NoError(t, db.Create(&catalog).Error)
	return db
}

func TestSentCounts_CoversWholeCatalog(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewInteractionRepository(db)
	ctx := context.Background()

	sender := "u1"
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, model.BadgeBlue, &sender, "u2")
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, model.BadgeYellow, &sender, "u3")
	require.NoError(t, err)

	counts, err := repo.SentCounts(ctx, sender)
	require.NoError(t, err)

	// 回填依赖完整计数集：目录里每个徽章 id 都必须出现，零值也不缺
	require.Len(t, counts, len(model.Catalog()))
	require.Equal(t, int64(3), counts[model.BadgeBlue])
	require.Equal(t, int64(1), counts[model.BadgeYellow])
	require.Equal(t, int64(0), counts[model.BadgeRed])
	require.Equal(t, int64(0), counts[model.BadgeCarnation])
}

func TestSentCounts_ZeroInteractionUserStillFullMap(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewInteractionRepository(db)

	counts, err := repo.SentCounts(context.Background(), "ghost")
	require.NoError(t, err)
	require.Len(t, counts, len(model.Catalog()))
	for id, n := range counts {
		require.Zero(t, n, "badge %d", id)
	}
}

func TestReceivedCounts_IgnoresSentRows(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewInteractionRepository(db)
	ctx := context.Background()

	sender := "u1"
	_, err := repo.Create(ctx, model.BadgeGreen, &sender, "u2")
	require.NoError(t, err)

	counts, err := repo.ReceivedCounts(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, int64(1), counts[model.BadgeGreen])

	counts, err = repo.ReceivedCounts(ctx, sender)
	require.NoError(t, err)
	require.Equal(t, int64(0), counts[model.BadgeGreen])
}

func TestAnonymousInteraction_CountsForReceiverOnly(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewInteractionRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, model.BadgePink, nil, "u2")
	require.NoError(t, err)

	recv, err := repo.ReceivedCounts(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, int64(1), recv[model.BadgePink])
}

func TestMaxSentToSameReceiver(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewInteractionRepository(db)
	ctx := context.Background()

	sender := "u1"
	// u2 收到 2 次，u3 收到 3 次
	for i := 0; i < 2; i++ {
		_, err := repo.Create(ctx, model.BadgePink, &sender, "u2")
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, model.BadgePink, &sender, "u3")
		require.NoError(t, err)
	}
	// 别的徽章不掺和
	_, err := repo.Create(ctx, model.BadgeRed, &sender, "u3")
	require.NoError(t, err)

	maxCnt, err := repo.MaxSentToSameReceiver(ctx, sender, model.BadgePink)
	require.NoError(t, err)
	require.Equal(t, int64(3), maxCnt)

	// 从未发过该徽章返回 0
	maxCnt, err = repo.MaxSentToSameReceiver(ctx, "ghost", model.BadgePink)
	require.NoError(t, err)
	require.Zero(t, maxCnt)
}

func TestUserBadgeCreate_Idempotent(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewUserBadgeRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", model.BadgeMincho))
	require.NoError(t, repo.Create(ctx, "u1", model.BadgeMincho))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	owned, err := repo.Exists(ctx, "u1", model.BadgeMincho)
	require.NoError(t, err)
	require.True(t, owned)
}

func TestBadgeRepository_NotFound(t *testing.T) {
	db := setupRepoDB(t)
	repo := NewBadgeRepository(db)

	_, err := repo.FindByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrBadgeNotFound)
}
