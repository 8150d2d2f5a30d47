package repository

import "gorm.io/gorm"

// Repositories bundles the repositories sharing one database handle.
type Repositories struct {
	Tx        *Transactor
	Owners    *OwnerRepository
	Gyms      *GymRepository
	Campaigns *CampaignRepository
	Members   *MemberRepository
	Referrals *ReferralRepository
	Rewards   *RewardRepository
	Stats     *StatsRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Tx:        NewTransactor(db),
		Owners:    NewOwnerRepository(db),
		Gyms:      NewGymRepository(db),
		Campaigns: NewCampaignRepository(db),
		Members:   NewMemberRepository(db),
		Referrals: NewReferralRepository(db),
		Rewards:   NewRewardRepository(db),
		Stats:     NewStatsRepository(db),
	}
}
