package repository

import (
	"context"

	"gymref/internal/models"

	"gorm.io/gorm"
)

// StatsRepository counts gym-scoped rows for the dashboard.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountMembers(ctx context.Context, gymID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Member{}).Where("gym_id = ?", gymID).Count(&n).Error
	return n, err
}

func (r *StatsRepository) codes(ctx context.Context, gymID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.ReferralCode{}).
		Joins("JOIN campaigns ON campaigns.id = referral_codes.campaign_id").
		Where("campaigns.gym_id = ?", gymID)
}

func (r *StatsRepository) CountCodes(ctx context.Context, gymID string) (int64, error) {
	var n int64
	err := r.codes(ctx, gymID).Count(&n).Error
	return n, err
}

// CountActiveReferrers counts codes with at least one verified join.
func (r *StatsRepository) CountActiveReferrers(ctx context.Context, gymID string) (int64, error) {
	var n int64
	err := r.codes(ctx, gymID).Where("referral_codes.join_count > 0").Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountVerifiedJoins(ctx context.Context, gymID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.ReferralJoin{}).
		Joins("JOIN referral_codes ON referral_codes.id = referral_joins.referral_code_id").
		Joins("JOIN campaigns ON campaigns.id = referral_codes.campaign_id").
		Where("campaigns.gym_id = ? AND referral_joins.verified_by_staff = ?", gymID, true).
		Count(&n).Error
	return n, err
}

func (r *StatsRepository) CountRewards(ctx context.Context, gymID string, statuses ...string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Reward{}).
		Joins("JOIN referral_codes ON referral_codes.id = rewards.referral_code_id").
		Joins("JOIN campaigns ON campaigns.id = referral_codes.campaign_id").
		Where("campaigns.gym_id = ? AND rewards.status IN ?", gymID, statuses).
		Count(&n).Error
	return n, err
}
