package model

import "time"

// UserBadge 用户已获得的徽章记录，(user_id, badge_id) 唯一
type UserBadge struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `gorm:"type:varchar(36);index:idx_user_badge_user;index:idx_user_badge_pair,unique;not null"`
	BadgeID    int64     `gorm:"not null;index:idx_user_badge_pair,unique"`
	AcquiredAt time.Time `gorm:"not null"`
}

func (UserBadge) TableName() string { return "user_badges" }
