package models

import (
	"time"

	"gorm.io/gorm"
)

// Reward tracks the unlocked reward of a referral code. At most one per code;
// status only moves UNLOCKED -> GIVEN.
type Reward struct {
	ID             string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ReferralCodeID string     `gorm:"type:varchar(36);not null;uniqueIndex" json:"referralCodeId"`
	Status         string     `gorm:"size:16;not null;index" json:"status"`
	UnlockedAt     time.Time  `gorm:"not null;index" json:"unlockedAt"`
	GivenAt        *time.Time `json:"givenAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`

	ReferralCode *ReferralCode `gorm:"foreignKey:ReferralCodeID" json:"referralCode,omitempty"`
}

func (Reward) TableName() string { return "rewards" }

func (r *Reward) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}
