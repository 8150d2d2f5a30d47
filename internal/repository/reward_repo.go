package repository

import (
	"context"
	"time"

	"gymref/internal/domain"
	"gymref/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RewardRepository struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

func (r *RewardRepository) WithTx(tx *gorm.DB) *RewardRepository {
	return &RewardRepository{db: tx}
}

// UnlockIfAbsent inserts an UNLOCKED reward for the code unless one already
// exists. The unique referral_code_id index makes this exactly-once; the
// returned reward is the one stored either way.
func (r *RewardRepository) UnlockIfAbsent(ctx context.Context, codeID string, at time.Time) (*models.Reward, bool, error) {
	db := r.db.WithContext(ctx)
	reward := &models.Reward{
		ReferralCodeID: codeID,
		Status:         domain.RewardStatusUnlocked,
		UnlockedAt:     at,
	}
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "referral_code_id"}},
		DoNothing: true,
	}).Create(reward)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return reward, true, nil
	}
	existing, err := r.GetByCodeID(ctx, codeID)
	return existing, false, err
}

func (r *RewardRepository) GetByCodeID(ctx context.Context, codeID string) (*models.Reward, error) {
	var rw models.Reward
	err := r.db.WithContext(ctx).Where("referral_code_id = ?", codeID).First(&rw).Error
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// GetWithCampaign loads the reward with its code and the code's campaign, the
// chain used for ownership checks.
func (r *RewardRepository) GetWithCampaign(ctx context.Context, id string) (*models.Reward, error) {
	var rw models.Reward
	err := r.db.WithContext(ctx).
		Preload("ReferralCode.Campaign").
		Where("id = ?", id).
		First(&rw).Error
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

func (r *RewardRepository) LockByID(ctx context.Context, id string) (*models.Reward, error) {
	var rw models.Reward
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&rw).Error
	if err != nil {
		return nil, err
	}
	return &rw, nil
}

// MarkGiven moves an UNLOCKED reward to GIVEN. It reports false when the
// reward was not UNLOCKED.
func (r *RewardRepository) MarkGiven(ctx context.Context, id string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Reward{}).
		Where("id = ? AND status = ?", id, domain.RewardStatusUnlocked).
		Updates(map[string]interface{}{
			"status":   domain.RewardStatusGiven,
			"given_at": at,
		})
	return res.RowsAffected == 1, res.Error
}

// ListByGym returns the gym's rewards with member and campaign, most recent
// unlock first.
func (r *RewardRepository) ListByGym(ctx context.Context, gymID string) ([]models.Reward, error) {
	var list []models.Reward
	err := r.db.WithContext(ctx).
		Joins("JOIN referral_codes ON referral_codes.id = rewards.referral_code_id").
		Joins("JOIN campaigns ON campaigns.id = referral_codes.campaign_id").
		Where("campaigns.gym_id = ?", gymID).
		Where("rewards.status IN ?", []string{domain.RewardStatusUnlocked, domain.RewardStatusGiven}).
		Preload("ReferralCode.Member").
		Preload("ReferralCode.Campaign").
		Order("rewards.unlocked_at DESC").
		Find(&list).Error
	return list, err
}
