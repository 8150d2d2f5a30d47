package models

import (
	"time"

	"gorm.io/gorm"
)

// Member is a gym member known by phone. A phone identifies at most one
// member per gym.
type Member struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	GymID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_members_gym_phone" json:"gymId"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Phone     string    `gorm:"size:32;not null;uniqueIndex:idx_members_gym_phone" json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Gym           *Gym           `gorm:"foreignKey:GymID" json:"-"`
	ReferralCodes []ReferralCode `gorm:"foreignKey:MemberID" json:"referralCodes,omitempty"`
}

func (Member) TableName() string { return "members" }

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}
