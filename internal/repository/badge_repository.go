package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/heart-badge/internal/model"
)

// ErrBadgeNotFound 目录中不存在该徽章
var ErrBadgeNotFound = errors.New("badge not found in catalog")

type BadgeRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Badge, error)
	FindAll(ctx context.Context) ([]model.Badge, error)
	FindByKind(ctx context.Context, kind string) ([]model.Badge, error)
}

type badgeRepository struct{ db *gorm.DB }

func NewBadgeRepository(db *gorm.DB) BadgeRepository { return &badgeRepository{db: db} }

func (r *badgeRepository) FindByID(ctx context.Context, id int64) (*model.Badge, error) {
	var b model.Badge
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadgeNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *badgeRepository) FindAll(ctx context.Context) ([]model.Badge, error) {
	var res []model.Badge
	err := r.db.WithContext(ctx).Order("id").Find(&res).Error
	return res, err
}

func (r *badgeRepository) FindByKind(ctx context.Context, kind string) ([]model.Badge, error) {
	var res []model.Badge
	err := r.db.WithContext(ctx).Where("kind = ?", kind).Order("id").Find(&res).Error
	return res, err
}
