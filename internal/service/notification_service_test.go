package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNotificationList_ExpiredAreRetired(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewNotificationService(env.notifications)

	_, err := env.notifications.Create(ctx, "u1", 8, "fresh", 24*time.Hour)
	require.NoError(t, err)
	_, err = env.notifications.Create(ctx, "u1", 9, "stale", -time.Minute)
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "fresh", list[0].Content)

	// 过期的已就地失效，下次列表不再经手
	raw, err := env.notifications.ListActive(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, raw, 1)
}

func TestNotificationMarkRead(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewNotificationService(env.notifications)

	n, err := env.notifications.Create(ctx, "u1", 8, "hello", 24*time.Hour)
	require.NoError(t, err)
	require.False(t, n.IsRead)

	require.NoError(t, svc.MarkRead(ctx, n.ID))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsRead)
}
