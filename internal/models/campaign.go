package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign is a gym referral promotion: reach TargetJoins verified joins on a
// code to unlock RewardName.
type Campaign struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	GymID       string    `gorm:"type:varchar(36);not null;index:idx_campaigns_gym_active,priority:1" json:"gymId"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	RewardName  string    `gorm:"size:128;not null" json:"rewardName"`
	TargetJoins int       `gorm:"not null" json:"targetJoins"`
	IsActive    bool      `gorm:"not null;index:idx_campaigns_gym_active,priority:2" json:"isActive"`
	CreatedAt   time.Time `gorm:"index:idx_campaigns_gym_active,priority:3" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Gym *Gym `gorm:"foreignKey:GymID" json:"gym,omitempty"`
}

func (Campaign) TableName() string { return "campaigns" }

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	assignID(&c.ID)
	return nil
}
