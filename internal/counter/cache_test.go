package counter

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb), mr
}

func TestCacheGet_AbsentIsNotZero(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	// 从未 warm 过的用户：exists 必须为 false
	v, ok, err := c.Get(ctx, DirectionSent, "u1", 2)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, int64(0), v)

	// warm 之后同一个读返回 0 且 exists 为 true
	require.NoError(t, c.Warm(ctx, DirectionSent, "u1", map[int64]int64{1: 0, 2: 0}))
	v, ok, err = c.Get(ctx, DirectionSent, "u1", 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(0), v)
}

func TestCacheIncrement_RefusesAbsentKey(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	_, err := c.Increment(ctx, DirectionSent, "u1", 2)
	require.ErrorIs(t, err, ErrKeyAbsent)
	// 脚本不能偷偷建出 key
	require.False(t, mr.Exists("counter:sent:u1"))
}

func TestCacheIncrement_AfterWarm(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Warm(ctx, DirectionSent, "u1", map[int64]int64{1: 3, 2: 0}))

	n, err := c.Increment(ctx, DirectionSent, "u1", 1)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)

	v, ok, err := c.Get(ctx, DirectionSent, "u1", 1)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(4), v)
}

func TestCacheDirectionsAreIndependent(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.Warm(ctx, DirectionSent, "u1", map[int64]int64{1: 2}))

	_, ok, err := c.Get(ctx, DirectionReceived, "u1", 1)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheWarm_RejectsEmptyMap(t *testing.T) {
	c, _ := setupCache(t)
	require.Error(t, c.Warm(context.Background(), DirectionSent, "u1", nil))
}
