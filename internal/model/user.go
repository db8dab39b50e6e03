package model

import "time"

const (
	UserTierFree    = "free"
	UserTierPremium = "premium"
)

type User struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string     `gorm:"column:email;type:varchar(255);uniqueIndex"`
	Tier         string     `gorm:"column:tier;type:varchar(20);not null;default:'free'"`
	Blocked      bool       `gorm:"column:blocked;not null;default:false"`
	PremiumSince *time.Time `gorm:"column:premium_since;null"`
	CreatedAt    time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (User) TableName() string {
	return "users"
}
