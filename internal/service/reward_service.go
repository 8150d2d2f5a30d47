package service

import (
	"context"
	"time"

	"gymref/internal/cache"
	"gymref/internal/domain"
	"gymref/internal/metrics"
	"gymref/internal/models"
	"gymref/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MarkGivenInput struct {
	RewardID string `json:"rewardId" binding:"required"`
}

type RewardService struct {
	repos *repository.Repositories
	cache cache.Cache
	log   logrus.FieldLogger
	now   func() time.Time
}

func NewRewardService(repos *repository.Repositories, c cache.Cache, log logrus.FieldLogger) *RewardService {
	return &RewardService{repos: repos, cache: c, log: log, now: time.Now}
}

// MarkGiven records that an unlocked reward was handed out. A reward already
// given is rejected and left untouched.
func (s *RewardService) MarkGiven(ctx context.Context, ownerID string, in MarkGivenInput) (*models.Reward, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	rw, err := s.repos.Rewards.GetWithCampaign(ctx, in.RewardID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, err
	}
	if _, err := authorizeGym(ctx, s.repos, ownerID, rw.ReferralCode.Campaign.GymID); err != nil {
		return nil, err
	}

	err = s.repos.Tx.InTransaction(ctx, func(tx *gorm.DB) error {
		rewards := s.repos.Rewards.WithTx(tx)
		locked, err := rewards.LockByID(ctx, rw.ID)
		if err != nil {
			return err
		}
		if locked.Status == domain.RewardStatusGiven {
			return domain.ErrRewardAlreadyGiven
		}
		ok, err := rewards.MarkGiven(ctx, locked.ID, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrRewardAlreadyGiven
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repos.Rewards.GetWithCampaign(ctx, rw.ID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, statusKey(rw.ReferralCode.Code)); err != nil {
		s.log.WithError(err).WithField("code", rw.ReferralCode.Code).Warn("referral status cache invalidation failed")
	}
	metrics.RecordRewardGiven()
	s.log.WithFields(logrus.Fields{"reward_id": rw.ID, "owner_id": ownerID}).Info("reward given")
	return updated, nil
}

// List returns the unlocked and given rewards of the owner's gym.
func (s *RewardService) List(ctx context.Context, ownerID string) ([]models.Reward, error) {
	gym, err := ownerGym(ctx, s.repos, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repos.Rewards.ListByGym(ctx, gym.ID)
}
