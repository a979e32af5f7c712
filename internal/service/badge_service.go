package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/heart-badge/internal/badge"
	"github.com/d60-Lab/heart-badge/internal/model"
	"github.com/d60-Lab/heart-badge/internal/repository"
)

var (
	ErrAlreadyAcquired = errors.New("badge already acquired")
	ErrNotAcquirable   = errors.New("acquisition condition not satisfied")
)

// BadgeData 徽章列表项
type BadgeData struct {
	BadgeID          int64  `json:"badge_id"`
	Name             string `json:"name"`
	ImageURL         string `json:"image_url"`
	ShortDescription string `json:"short_description"`
	Kind             string `json:"kind"`
	IsLocked         bool   `json:"is_locked"`
}

// BadgeDetailData 徽章详情：锁定的特殊徽章附带达成现状。
type BadgeDetailData struct {
	BadgeData
	LongDescription string           `json:"long_description"`
	AcqCondition    string           `json:"acq_condition"`
	IsAcquirable    *bool            `json:"is_acquirable,omitempty"`
	Conditions      []badge.Progress `json:"conditions,omitempty"`
}

// BadgeService 徽章目录门面：列表、详情、获取。
type BadgeService struct {
	badges     repository.BadgeRepository
	userBadges repository.UserBadgeRepository
	evaluator  *badge.Evaluator
}

func NewBadgeService(badges repository.BadgeRepository, userBadges repository.UserBadgeRepository, evaluator *badge.Evaluator) *BadgeService {
	return &BadgeService{badges: badges, userBadges: userBadges, evaluator: evaluator}
}

// ListBadges 返回目录。匿名用户只看到默认徽章；登录用户看到全部，
// 默认徽章解锁，其余徽章在拥有记录存在时解锁。
func (s *BadgeService) ListBadges(ctx context.Context, userID *string) ([]BadgeData, error) {
	if userID == nil {
		defaults, err := s.badges.FindByKind(ctx, model.KindDefault)
		if err != nil {
			return nil, err
		}
		res := make([]BadgeData, 0, len(defaults))
		for _, b := range defaults {
			res = append(res, badgeData(&b, false))
		}
		return res, nil
	}

	all, err := s.badges.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	owned, err := s.ownedSet(ctx, *userID)
	if err != nil {
		return nil, err
	}
	res := make([]BadgeData, 0, len(all))
	for _, b := range all {
		locked := !b.IsDefault() && !owned[b.ID]
		res = append(res, badgeData(&b, locked))
	}
	return res, nil
}

// BadgeDetail 徽章详情。登录用户未拥有的特殊徽章附带 acquirable 标记
// 和达成进度；计数暂不可用时两者缺省（调用方稍后重试），不整体失败。
func (s *BadgeService) BadgeDetail(ctx context.Context, userID *string, badgeID int64) (*BadgeDetailData, error) {
	b, err := s.badges.FindByID(ctx, badgeID)
	if err != nil {
		return nil, err
	}

	detail := &BadgeDetailData{
		BadgeData:       badgeData(b, !b.IsDefault()),
		LongDescription: b.LongDescription,
		AcqCondition:    b.AcqCondition,
	}
	if b.IsDefault() || userID == nil {
		return detail, nil
	}

	owned, err := s.userBadges.Exists(ctx, *userID, badgeID)
	if err != nil {
		return nil, err
	}
	if owned {
		detail.IsLocked = false
		return detail, nil
	}
	if !b.IsSpecial() {
		return detail, nil
	}

	acq, err := s.evaluator.IsAcquirable(ctx, *userID, badgeID)
	if err != nil {
		return detail, nil
	}
	detail.IsAcquirable = &acq
	conds, err := s.evaluator.Progress(ctx, *userID, badgeID)
	if err != nil {
		return detail, nil
	}
	detail.Conditions = conds
	return detail, nil
}

// Acquire 把满足条件的特殊徽章记为已拥有。所有权检查在这里（调用方），
// 评估器本身不关心是否已拥有。
func (s *BadgeService) Acquire(ctx context.Context, userID string, badgeID int64) error {
	b, err := s.badges.FindByID(ctx, badgeID)
	if err != nil {
		return err
	}
	if !b.IsSpecial() {
		return ErrNotAcquirable
	}
	owned, err := s.userBadges.Exists(ctx, userID, badgeID)
	if err != nil {
		return err
	}
	if owned {
		return ErrAlreadyAcquired
	}
	acq, err := s.evaluator.IsAcquirable(ctx, userID, badgeID)
	if err != nil {
		return err
	}
	if !acq {
		return ErrNotAcquirable
	}
	return s.userBadges.Create(ctx, userID, badgeID)
}

func (s *BadgeService) ownedSet(ctx context.Context, userID string) (map[int64]bool, error) {
	list, err := s.userBadges.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make(map[int64]bool, len(list))
	for _, ub := range list {
		res[ub.BadgeID] = true
	}
	return res, nil
}

func badgeData(b *model.Badge, locked bool) BadgeData {
	return BadgeData{
		BadgeID:          b.ID,
		Name:             b.Name,
		ImageURL:         b.ImageURL,
		ShortDescription: b.ShortDescription,
		Kind:             b.Kind,
		IsLocked:         locked,
	}
}
