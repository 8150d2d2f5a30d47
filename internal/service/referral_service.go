package service

import (
	"context"
	"strings"
	"time"

	"gymref/internal/cache"
	"gymref/internal/domain"
	"gymref/internal/metrics"
	"gymref/internal/models"
	"gymref/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type IssueCodeInput struct {
	GymID string `json:"gymId" binding:"required"`
	Name  string `json:"name" binding:"required,min=2,max=128"`
	Phone string `json:"phone" binding:"required,min=10,max=32"`
}

type IssuedCode struct {
	Code       string `json:"code"`
	MemberID   string `json:"memberId"`
	CampaignID string `json:"campaignId"`
	Created    bool   `json:"created"`
}

type VerifyJoinInput struct {
	Code  string `json:"code" binding:"required"`
	Phone string `json:"phone" binding:"required,min=10,max=32"`
}

type VerifyResult struct {
	JoinCount      int            `json:"joinCount"`
	TargetJoins    int            `json:"targetJoins"`
	RewardUnlocked bool           `json:"rewardUnlocked"`
	Reward         *models.Reward `json:"reward,omitempty"`
}

// ReferralStatus is the public progress of one referral code.
type ReferralStatus struct {
	Code          string `json:"code"`
	MemberName    string `json:"memberName"`
	CampaignTitle string `json:"campaignTitle"`
	RewardName    string `json:"rewardName"`
	JoinCount     int    `json:"joinCount"`
	TargetJoins   int    `json:"targetJoins"`
	Remaining     int    `json:"remaining"`
	Progress      int    `json:"progress"`
	Unlocked      bool   `json:"unlocked"`
	RewardStatus  string `json:"rewardStatus,omitempty"`
}

type ReferralService struct {
	repos     *repository.Repositories
	cache     cache.Cache
	statusTTL time.Duration
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewReferralService(repos *repository.Repositories, c cache.Cache, statusTTL time.Duration, log logrus.FieldLogger) *ReferralService {
	return &ReferralService{repos: repos, cache: c, statusTTL: statusTTL, log: log, now: time.Now}
}

// IssueCode returns the referral code of the member identified by phone for
// the gym's active campaign, creating the member and the code on first call.
func (s *ReferralService) IssueCode(ctx context.Context, in IssueCodeInput) (*IssuedCode, error) {
	in.GymID = strings.TrimSpace(in.GymID)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	gym, err := s.repos.Gyms.GetByID(ctx, in.GymID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}
	member, memberCreated, err := s.repos.Members.GetOrCreate(ctx, gym.ID, in.Name, in.Phone)
	if err != nil {
		return nil, err
	}
	campaign, err := activeCampaign(ctx, s.repos, gym.ID)
	if err != nil {
		return nil, err
	}
	rc, created, err := s.repos.Referrals.GetOrCreateCode(ctx, member.ID, campaign.ID)
	if err != nil {
		return nil, err
	}

	metrics.RecordCodeIssued(created)
	s.log.WithFields(logrus.Fields{
		"gym_id":         gym.ID,
		"member_id":      member.ID,
		"member_created": memberCreated,
		"campaign_id":    campaign.ID,
		"code_created":   created,
	}).Info("referral code issued")

	return &IssuedCode{Code: rc.Code, MemberID: member.ID, CampaignID: campaign.ID, Created: created}, nil
}

// VerifyJoin records that the person with phone joined the gym through code.
// The join, the counter increment and the reward unlock commit together
// while the code row is locked, so concurrent verifications of one code
// neither lose increments nor unlock twice.
func (s *ReferralService) VerifyJoin(ctx context.Context, ownerID string, in VerifyJoinInput) (*VerifyResult, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.Code = NormalizeCode(in.Code)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := domain.Validate(in); err != nil {
		return nil, err
	}

	rc, err := s.repos.Referrals.GetByCode(ctx, in.Code)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, domain.ErrReferralCodeNotFound
		}
		return nil, err
	}
	if _, err := authorizeGym(ctx, s.repos, ownerID, rc.Campaign.GymID); err != nil {
		return nil, err
	}

	now := s.now()
	result := &VerifyResult{TargetJoins: rc.Campaign.TargetJoins}
	err = s.repos.Tx.InTransaction(ctx, func(tx *gorm.DB) error {
		refs := s.repos.Referrals.WithTx(tx)
		locked, err := refs.LockByID(ctx, rc.ID)
		if err != nil {
			return err
		}
		exists, err := refs.JoinExists(ctx, locked.ID, in.Phone)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyVerified
		}
		err = refs.CreateJoin(ctx, &models.ReferralJoin{
			ReferralCodeID:    locked.ID,
			JoinedMemberPhone: in.Phone,
			VerifiedByStaff:   true,
			VerifiedBy:        ownerID,
			VerifiedAt:        now,
		})
		if err != nil {
			if repository.IsDuplicate(err) {
				return domain.ErrAlreadyVerified
			}
			return err
		}
		count, err := refs.IncrementJoinCount(ctx, locked.ID)
		if err != nil {
			return err
		}
		result.JoinCount = count

		if count < result.TargetJoins {
			return nil
		}
		reward, created, err := s.repos.Rewards.WithTx(tx).UnlockIfAbsent(ctx, locked.ID, now)
		if err != nil {
			return err
		}
		result.Reward = reward
		result.RewardUnlocked = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStatus(ctx, rc.Code)
	metrics.RecordJoinVerified(result.RewardUnlocked)
	s.log.WithFields(logrus.Fields{
		"code":            rc.Code,
		"owner_id":        ownerID,
		"join_count":      result.JoinCount,
		"target_joins":    result.TargetJoins,
		"reward_unlocked": result.RewardUnlocked,
	}).Info("referral join verified")
	return result, nil
}

// Status returns the public progress of a referral code. Results are cached
// for the status TTL and dropped whenever the code changes.
func (s *ReferralService) Status(ctx context.Context, code string) (*ReferralStatus, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, domain.ErrReferralCodeNotFound
	}
	st, err := cache.UseCache(ctx, s.cache, statusKey(code), s.statusTTL, func() (ReferralStatus, error) {
		return s.loadStatus(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *ReferralService) loadStatus(ctx context.Context, code string) (ReferralStatus, error) {
	rc, err := s.repos.Referrals.GetDetailsByCode(ctx, code)
	if err != nil {
		if repository.IsNotFound(err) {
			return ReferralStatus{}, domain.ErrReferralCodeNotFound
		}
		return ReferralStatus{}, err
	}
	st := ReferralStatus{
		Code:        rc.Code,
		JoinCount:   rc.JoinCount,
		TargetJoins: rc.Campaign.TargetJoins,
	}
	if rc.Member != nil {
		st.MemberName = rc.Member.Name
	}
	st.CampaignTitle = rc.Campaign.Title
	st.RewardName = rc.Campaign.RewardName
	st.Remaining = max(st.TargetJoins-st.JoinCount, 0)
	if st.TargetJoins > 0 {
		st.Progress = min(st.JoinCount*100/st.TargetJoins, 100)
	}
	if rc.Reward != nil {
		st.Unlocked = true
		st.RewardStatus = rc.Reward.Status
	}
	return st, nil
}

func (s *ReferralService) invalidateStatus(ctx context.Context, code string) {
	if err := s.cache.Delete(ctx, statusKey(code)); err != nil {
		s.log.WithError(err).WithField("code", code).Warn("referral status cache invalidation failed")
	}
}

func statusKey(code string) string {
	return "referral:status:" + code
}

// NormalizeCode trims and upper-cases a code typed by staff or read from a link.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
