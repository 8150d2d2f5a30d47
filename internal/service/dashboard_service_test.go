package service

import (
	"context"
	"testing"
	"time"

	"gymref/internal/domain"
	"gymref/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, gym := testutil.CreateOwner(t, f.db, "owner@example.com")
	testutil.CreateCampaign(t, f.db, gym.ID, 2, true, time.Now())
	first := f.issue(t, gym.ID, 1)
	second := f.issue(t, gym.ID, 2)
	f.issue(t, gym.ID, 3)

	f.verify(t, owner.ID, first, 101)
	res := f.verify(t, owner.ID, first, 102)
	require.NotNil(t, res.Reward)
	f.verify(t, owner.ID, second, 103)

	stats, err := f.dashboard.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, DashboardStats{
		TotalScans:      0,
		ActiveMembers:   3,
		ActiveReferrers: 2,
		ReferralCodes:   3,
		SuccessfulJoins: 3,
		RewardsUnlocked: 1,
		RewardsPending:  1,
	}, *stats)

	_, err = f.rewards.MarkGiven(ctx, owner.ID, MarkGivenInput{RewardID: res.Reward.ID})
	require.NoError(t, err)
	stats, err = f.dashboard.Stats(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.RewardsUnlocked)
	assert.Zero(t, stats.RewardsPending)
}

func TestDashboardService_Stats_NoGym(t *testing.T) {
	f := newFixture(t)

	_, err := f.dashboard.Stats(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrGymNotFound)
}
