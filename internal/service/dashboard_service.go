package service

import (
	"context"

	"gymref/internal/domain"
	"gymref/internal/repository"

	"golang.org/x/sync/errgroup"
)

type DashboardStats struct {
	TotalScans      int64 `json:"totalScans"`
	ActiveMembers   int64 `json:"activeMembers"`
	ActiveReferrers int64 `json:"activeReferrers"`
	ReferralCodes   int64 `json:"referralCodes"`
	SuccessfulJoins int64 `json:"successfulJoins"`
	RewardsUnlocked int64 `json:"rewardsUnlocked"`
	RewardsPending  int64 `json:"rewardsPending"`
}

type DashboardService struct {
	repos *repository.Repositories
}

func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

// Stats counts the owner's gym activity. Scans are not tracked; TotalScans
// is always zero.
func (s *DashboardService) Stats(ctx context.Context, ownerID string) (*DashboardStats, error) {
	gym, err := ownerGym(ctx, s.repos, ownerID)
	if err != nil {
		return nil, err
	}
	stats := s.repos.Stats
	out := &DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ActiveMembers, err = stats.CountMembers(gctx, gym.ID)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveReferrers, err = stats.CountActiveReferrers(gctx, gym.ID)
		return err
	})
	g.Go(func() (err error) {
		out.ReferralCodes, err = stats.CountCodes(gctx, gym.ID)
		return err
	})
	g.Go(func() (err error) {
		out.SuccessfulJoins, err = stats.CountVerifiedJoins(gctx, gym.ID)
		return err
	})
	g.Go(func() (err error) {
		out.RewardsUnlocked, err = stats.CountRewards(gctx, gym.ID, domain.RewardStatusUnlocked, domain.RewardStatusGiven)
		return err
	})
	g.Go(func() (err error) {
		out.RewardsPending, err = stats.CountRewards(gctx, gym.ID, domain.RewardStatusUnlocked)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
