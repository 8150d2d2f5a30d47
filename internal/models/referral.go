package models

import (
	"time"

	"gorm.io/gorm"
)

// ReferralCode is one member's participation in one campaign.
// (member_id, campaign_id) and code are both unique.
type ReferralCode struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MemberID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_referral_codes_member_campaign" json:"memberId"`
	CampaignID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_referral_codes_member_campaign;index" json:"campaignId"`
	Code       string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	JoinCount  int       `gorm:"not null;default:0" json:"joinCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Member   *Member   `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Campaign *Campaign `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	Reward   *Reward   `gorm:"foreignKey:ReferralCodeID" json:"reward,omitempty"`
}

func (ReferralCode) TableName() string { return "referral_codes" }

func (rc *ReferralCode) BeforeCreate(tx *gorm.DB) error {
	assignID(&rc.ID)
	return nil
}

// ReferralJoin is one staff-verified join. Append only; a phone is counted at
// most once per code.
type ReferralJoin struct {
	ID                string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	ReferralCodeID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_referral_joins_code_phone" json:"referralCodeId"`
	JoinedMemberPhone string    `gorm:"size:32;not null;uniqueIndex:idx_referral_joins_code_phone" json:"joinedMemberPhone"`
	VerifiedByStaff   bool      `gorm:"not null" json:"verifiedByStaff"`
	VerifiedBy        string    `gorm:"type:varchar(36);index" json:"verifiedBy"`
	VerifiedAt        time.Time `gorm:"not null" json:"verifiedAt"`
	CreatedAt         time.Time `json:"createdAt"`

	ReferralCode *ReferralCode `gorm:"foreignKey:ReferralCodeID" json:"-"`
}

func (ReferralJoin) TableName() string { return "referral_joins" }

func (j *ReferralJoin) BeforeCreate(tx *gorm.DB) error {
	assignID(&j.ID)
	return nil
}
