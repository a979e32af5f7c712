package badge

import (
	"errors"

	"github.com/d60-Lab/heart-badge/internal/counter"
	"github.com/d60-Lab/heart-badge/internal/model"
)

// ErrNoRuleFound 徽章 id 完全不在目录里。这是配置错误，必须吵闹地暴露，
// 而不是默默吞掉——说明引用了未注册的徽章。
var ErrNoRuleFound = errors.New("no acquisition rule registered for badge")

// Rules 把徽章 id 映射到判定规则。Event 类徽章映射到 neverAcquirable
// 哨兵（定义良好的恒 false），未知 id 返回 ErrNoRuleFound，绝不返回
// 无错误的 nil 规则。
type Rules struct {
	registry map[int64]Rule
}

// NewRules builds the fixed rule catalog against the given count and
// catalog surfaces.
func NewRules(counters Counters, catalog Catalog) *Rules {
	r := &Rules{registry: make(map[int64]Rule)}

	sent := func(badgeID, required int64) Rule {
		return countAtLeast{counters: counters, catalog: catalog, direction: counter.DirectionSent, badgeID: badgeID, required: required}
	}
	received := func(badgeID, required int64) Rule {
		return countAtLeast{counters: counters, catalog: catalog, direction: counter.DirectionReceived, badgeID: badgeID, required: required}
	}

	r.Register(model.BadgePlanet, neverAcquirable{})
	r.Register(model.BadgeRainbow, allDefaultsSentAtLeast{counters: counters, catalog: catalog, required: 1})
	r.Register(model.BadgeMincho, sent(model.BadgeBlue, 5))
	r.Register(model.BadgeSunny, sent(model.BadgeYellow, 5))
	r.Register(model.BadgeReadingGlasses, maxSameReceiverAtLeast{counters: counters, catalog: catalog, badgeID: model.BadgePink, required: 3})
	r.Register(model.BadgeIceCream, received(model.BadgeSunny, 3))
	r.Register(model.BadgeShamrock, sent(model.BadgeGreen, 3))
	r.Register(model.BadgeFourLeaf, received(model.BadgeShamrock, 4))
	r.Register(model.BadgeNoir, allDefaultsSentAtLeast{counters: counters, catalog: catalog, required: 2})
	r.Register(model.BadgeCarnation, neverAcquirable{})

	return r
}

// Register adds or replaces the rule for a badge id.
func (r *Rules) Register(badgeID int64, rule Rule) { r.registry[badgeID] = rule }

// For returns the rule for a badge id.
func (r *Rules) For(badgeID int64) (Rule, error) {
	rule, ok := r.registry[badgeID]
	if !ok {
		return nil, ErrNoRuleFound
	}
	return rule, nil
}
