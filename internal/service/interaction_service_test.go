package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/repository"
)

func TestRecord_RejectsUnknownBadge(t *testing.T) {
	env := setupEnv(t)
	svc := NewInteractionService(env.interactions, env.badges, env.counters, nil)

	sender := "u1"
	_, err := svc.Record(context.Background(), 999, &sender, "u2")
	require.ErrorIs(t, err, repository.ErrBadgeNotFound)
}

func TestRecord_AnonymousSenderCountsReceiverOnly(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewInteractionService(env.interactions, env.badges, env.counters, nil)

	it, err := svc.Record(ctx, model.BadgePink, nil, "u2")
	require.NoError(t, err)
	require.Nil(t, it.SenderID)

	n, err := env.counters.GetCount(ctx, counter.DirectionReceived, "u2", model.BadgePink)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}

func TestRecord_KeepsCacheAndStoreAligned(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewInteractionService(env.interactions, env.badges, env.counters, nil)

	sender := "u1"
	for i := 0; i < 4; i++ {
		_, err := svc.Record(ctx, model.BadgeGreen, &sender, "u2")
		require.NoError(t, err)
	}

	// 缓存读
	n, err := env.counters.GetCount(ctx, counter.DirectionSent, sender, model.BadgeGreen)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	// 事实来源一致
	counts, err := env.interactions.SentCounts(ctx, sender)
	require.NoError(t, err)
	require.Equal(t, int64(4), counts[model.BadgeGreen])
}

func TestRecord_EnqueuesBothParties(t *testing.T) {
	env := setupEnv(t)
	svc := NewInteractionService(env.interactions, env.badges, env.counters, env.scanner)

	sender := "u1"
	_, err := svc.Record(context.Background(), model.BadgeBlue, &sender, "u2")
	require.NoError(t, err)

	// 扫描 worker 未启动，两个当事人都应停在队列里
	require.Len(t, env.scanner.ch, 2)
}
