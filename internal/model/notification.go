package model

import "time"

// Notification 徽章可获得提醒（落库供客户端拉取，不做实时推送）
type Notification struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);index:idx_notification_user;not null"`
	BadgeID   int64     `gorm:"not null"`
	Content   string    `gorm:"type:varchar(255);not null"`
	IsRead    bool      `gorm:"not null;default:false"`
	IsActive  bool      `gorm:"not null;default:true;index:idx_notification_user"`
	ExpiredAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
