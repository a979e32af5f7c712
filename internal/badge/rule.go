package badge

import (
	"context"

	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
)

// Progress 解释一个子条件的达成现状：当前值 / 要求值。
type Progress struct {
	BadgeID  int64  `json:"badge_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Current  int64  `json:"current"`
	Required int64  `json:"required"`
}

// Rule 单个特殊徽章的获取判定。规则无状态，按调用传入用户。
type Rule interface {
	IsAcquirable(ctx context.Context, userID string) (bool, error)
	Progress(ctx context.Context, userID string) ([]Progress, error)
}

// Counters is the count surface rules evaluate against.
type Counters interface {
	GetCount(ctx context.Context, d counter.Direction, userID string, badgeID int64) (int64, error)
	MaxSentToSameReceiver(ctx context.Context, userID string, badgeID int64) (int64, error)
}

// Catalog resolves badge reference data for progress reporting.
type Catalog interface {
	FindByID(ctx context.Context, id int64) (*model.Badge, error)
	FindByKind(ctx context.Context, kind string) ([]model.Badge, error)
}
