package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/heart-badge/internal/model"
)

// InteractionRepository 互动记录仓储，同时是计数的事实来源。
// 计数查询 LEFT JOIN 徽章目录，保证每个徽章 id 都出现在结果里
// （没有互动的徽章计为 0），这样缓存回填总能建出完整的计数集。
type InteractionRepository interface {
	Create(ctx context.Context, badgeID int64, senderID *string, receiverID string) (*model.Interaction, error)

	// SentCounts returns the full per-badge sent count map for one user.
	SentCounts(ctx context.Context, userID string) (map[int64]int64, error)
	// ReceivedCounts returns the full per-badge received count map for one user.
	ReceivedCounts(ctx context.Context, userID string) (map[int64]int64, error)
	// MaxSentToSameReceiver returns the largest number of badgeID
	// interactions the user sent to any single receiver.
	MaxSentToSameReceiver(ctx context.Context, userID string, badgeID int64) (int64, error)
}

type interactionRepository struct{ db *gorm.DB }

func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, badgeID int64, senderID *string, receiverID string) (*model.Interaction, error) {
	it := &model.Interaction{ID: uuid.New().String(), BadgeID: badgeID, SenderID: senderID, ReceiverID: receiverID}
	if err := r.db.WithContext(ctx).Create(it).Error; err != nil {
		return nil, err
	}
	return it, nil
}

type badgeCount struct {
	BadgeID int64
	Cnt     int64
}

func (r *interactionRepository) SentCounts(ctx context.Context, userID string) (map[int64]int64, error) {
	return r.counts(ctx, "interactions.sender_id = ?", userID)
}

func (r *interactionRepository) ReceivedCounts(ctx context.Context, userID string) (map[int64]int64, error) {
	return r.counts(ctx, "interactions.receiver_id = ?", userID)
}

func (r *interactionRepository) counts(ctx context.Context, cond, userID string) (map[int64]int64, error) {
	var rows []badgeCount
	err := r.db.WithContext(ctx).
		Table("badges").
		Select("badges.id AS badge_id", "COUNT(interactions.id) AS cnt").
		Joins("LEFT JOIN interactions ON interactions.badge_id = badges.id AND "+cond, userID).
		Group("badges.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	res := make(map[int64]int64, len(rows))
	for _, row := range rows {
		res[row.BadgeID] = row.Cnt
	}
	return res, nil
}

func (r *interactionRepository) MaxSentToSameReceiver(ctx context.Context, userID string, badgeID int64) (int64, error) {
	var row badgeCount
	tx := r.db.WithContext(ctx).Raw(`
        SELECT COUNT(*) AS cnt
        FROM interactions
        WHERE sender_id = ? AND badge_id = ?
        GROUP BY receiver_id
        ORDER BY cnt DESC
        LIMIT 1
    `, userID, badgeID).Scan(&row)
	if tx.Error != nil {
		return 0, tx.Error
	}
	// no rows means the user never sent this badge
	return row.Cnt, nil
}
