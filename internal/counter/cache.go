package counter

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Direction 计数方向（相对被查询的用户）
type Direction string

const (
	DirectionSent     Direction = "sent"
	DirectionReceived Direction = "recv"
)

// ErrKeyAbsent 表示该用户该方向的计数集从未初始化过。
// 缓存里没有 key 不等于计数为 0，必须由上层回填后重试。
var ErrKeyAbsent = errors.New("counter key absent")

// incrIfExists refuses to create a counter set out of nothing: a missing
// hash key means the user was never warmed, not that the count is zero.
var incrIfExists = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
    return -1
end
return redis.call("HINCRBY", KEYS[1], ARGV[1], 1)
`)

// Cache 每个 (direction, user) 一个 Redis hash，field 为徽章 id。
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache { return &Cache{rdb: rdb} }

func key(d Direction, userID string) string {
	return fmt.Sprintf("counter:%s:%s", d, userID)
}

// Get returns the cached count. The second result reports whether the
// user's counter set exists at all; absent is distinct from zero.
func (c *Cache) Get(ctx context.Context, d Direction, userID string, badgeID int64) (int64, bool, error) {
	k := key(d, userID)
	exists, err := c.rdb.Exists(ctx, k).Result()
	if err != nil {
		return 0, false, err
	}
	if exists == 0 {
		return 0, false, nil
	}
	v, err := c.rdb.HGet(ctx, k, strconv.FormatInt(badgeID, 10)).Result()
	if errors.Is(err, redis.Nil) {
		// warmed set without this field counts as zero
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt counter value %q: %w", v, err)
	}
	return n, true, nil
}

// Increment atomically adds 1 to an existing counter. It fails with
// ErrKeyAbsent when the user's counter set was never warmed.
func (c *Cache) Increment(ctx context.Context, d Direction, userID string, badgeID int64) (int64, error) {
	res, err := incrIfExists.Run(ctx, c.rdb, []string{key(d, userID)}, strconv.FormatInt(badgeID, 10)).Int64()
	if err != nil {
		return 0, err
	}
	if res < 0 {
		return 0, ErrKeyAbsent
	}
	return res, nil
}

// Warm bulk-initializes every badge counter for one user and direction.
// Racing warms are tolerated: both write the same store aggregate.
func (c *Cache) Warm(ctx context.Context, d Direction, userID string, counts map[int64]int64) error {
	if len(counts) == 0 {
		return fmt.Errorf("refusing to warm %s/%s with empty count map", d, userID)
	}
	fields := make([]interface{}, 0, len(counts)*2)
	for badgeID, cnt := range counts {
		fields = append(fields, strconv.FormatInt(badgeID, 10), cnt)
	}
	return c.rdb.HSet(ctx, key(d, userID), fields...).Err()
}
