package model

import "time"

// Interaction 一次带徽章标记的定向互动（计数的持久事实来源）
// SenderID 为空表示匿名发送，不产生 sent 计数。
type Interaction struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	BadgeID    int64     `gorm:"not null;index:idx_interaction_badge"`
	SenderID   *string   `gorm:"type:varchar(36);index:idx_interaction_sender"`
	ReceiverID string    `gorm:"type:varchar(36);not null;index:idx_interaction_receiver"`
	CreatedAt  time.Time `gorm:"index"`
}

func (Interaction) TableName() string { return "interactions" }
