package badge

import (
	"context"

	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
)

// neverAcquirable 没有解锁路径的徽章（Event 类）的哨兵规则。
type neverAcquirable struct{}

func (neverAcquirable) IsAcquirable(context.Context, string) (bool, error) { return false, nil }
func (neverAcquirable) Progress(context.Context, string) ([]Progress, error) {
	return []Progress{}, nil
}

// countAtLeast 单徽章计数阈值规则（sent 或 received）。
type countAtLeast struct {
	counters  Counters
	catalog   Catalog
	direction counter.Direction
	badgeID   int64
	required  int64
}

func (r countAtLeast) IsAcquirable(ctx context.Context, userID string) (bool, error) {
	cnt, err := r.counters.GetCount(ctx, r.direction, userID, r.badgeID)
	if err != nil {
		return false, err
	}
	return cnt >= r.required, nil
}

func (r countAtLeast) Progress(ctx context.Context, userID string) ([]Progress, error) {
	b, err := r.catalog.FindByID(ctx, r.badgeID)
	if err != nil {
		return nil, err
	}
	cnt, err := r.counters.GetCount(ctx, r.direction, userID, r.badgeID)
	if err != nil {
		return nil, err
	}
	return []Progress{progressOf(b, cnt, r.required)}, nil
}

// allDefaultsSentAtLeast 每个默认徽章的 sent 计数都达到阈值。
type allDefaultsSentAtLeast struct {
	counters Counters
	catalog  Catalog
	required int64
}

func (r allDefaultsSentAtLeast) IsAcquirable(ctx context.Context, userID string) (bool, error) {
	defaults, err := r.catalog.FindByKind(ctx, model.KindDefault)
	if err != nil {
		return false, err
	}
	for _, b := range defaults {
		cnt, err := r.counters.GetCount(ctx, counter.DirectionSent, userID, b.ID)
		if err != nil {
			return false, err
		}
		if cnt < r.required {
			return false, nil
		}
	}
	return true, nil
}

func (r allDefaultsSentAtLeast) Progress(ctx context.Context, userID string) ([]Progress, error) {
	defaults, err := r.catalog.FindByKind(ctx, model.KindDefault)
	if err != nil {
		return nil, err
	}
	res := make([]Progress, 0, len(defaults))
	for _, b := range defaults {
		cnt, err := r.counters.GetCount(ctx, counter.DirectionSent, userID, b.ID)
		if err != nil {
			return nil, err
		}
		res = append(res, progressOf(&b, cnt, r.required))
	}
	return res, nil
}

// maxSameReceiverAtLeast 给同一个接收者发送某徽章达到阈值。
// 判定用按接收方分组的最大值；进度展示沿用扁平 sent 计数。
type maxSameReceiverAtLeast struct {
	counters Counters
	catalog  Catalog
	badgeID  int64
	required int64
}

func (r maxSameReceiverAtLeast) IsAcquirable(ctx context.Context, userID string) (bool, error) {
	maxCnt, err := r.counters.MaxSentToSameReceiver(ctx, userID, r.badgeID)
	if err != nil {
		return false, err
	}
	return maxCnt >= r.required, nil
}

func (r maxSameReceiverAtLeast) Progress(ctx context.Context, userID string) ([]Progress, error) {
	b, err := r.catalog.FindByID(ctx, r.badgeID)
	if err != nil {
		return nil, err
	}
	cnt, err := r.counters.GetCount(ctx, counter.DirectionSent, userID, r.badgeID)
	if err != nil {
		return nil, err
	}
	return []Progress{progressOf(b, cnt, r.required)}, nil
}

func progressOf(b *model.Badge, current, required int64) Progress {
	return Progress{
		BadgeID:  b.ID,
		Name:     b.Name,
		ImageURL: b.ImageURL,
		Current:  current,
		Required: required,
	}
}
