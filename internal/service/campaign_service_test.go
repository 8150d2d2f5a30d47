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

func TestCampaignService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, gym := testutil.CreateOwner(t, f.db, "owner@example.com")

	c, err := f.campaigns.Create(ctx, owner.ID, CreateCampaignInput{Title: "Summer", RewardName: "Protein shake", TargetJoins: 3})
	require.NoError(t, err)
	assert.True(t, c.IsActive)
	assert.Equal(t, gym.ID, c.GymID)

	list, err := f.campaigns.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCampaignService_Create_Validation(t *testing.T) {
	f := newFixture(t)
	owner, _ := testutil.CreateOwner(t, f.db, "owner@example.com")

	_, err := f.campaigns.Create(context.Background(), owner.ID, CreateCampaignInput{Title: " ", RewardName: "X", TargetJoins: 0})

	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	fields := []string{}
	for _, is := range de.Issues {
		fields = append(fields, is.Field)
	}
	assert.ElementsMatch(t, []string{"title", "rewardName", "targetJoins"}, fields)
}

func TestCampaignService_Create_LargeTarget(t *testing.T) {
	f := newFixture(t)
	owner, _ := testutil.CreateOwner(t, f.db, "owner@example.com")

	c, err := f.campaigns.Create(context.Background(), owner.ID, CreateCampaignInput{Title: "Marathon", RewardName: "Free year", TargetJoins: 5000})
	require.NoError(t, err)
	assert.Equal(t, 5000, c.TargetJoins)
}

func TestCampaignService_Create_NoGym(t *testing.T) {
	f := newFixture(t)

	_, err := f.campaigns.Create(context.Background(), "owner-without-gym", CreateCampaignInput{Title: "Summer", RewardName: "Shake", TargetJoins: 1})
	assert.ErrorIs(t, err, domain.ErrGymNotFound)
}

func TestCampaignService_Get_Ownership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, gym := testutil.CreateOwner(t, f.db, "owner@example.com")
	other, _ := testutil.CreateOwner(t, f.db, "other@example.com")
	c := testutil.CreateCampaign(t, f.db, gym.ID, 3, true, time.Now())

	got, err := f.campaigns.Get(ctx, owner.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = f.campaigns.Get(ctx, other.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.campaigns.Get(ctx, owner.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestCampaignService_SetActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner, gym := testutil.CreateOwner(t, f.db, "owner@example.com")
	c := testutil.CreateCampaign(t, f.db, gym.ID, 3, true, time.Now())

	got, err := f.campaigns.SetActive(ctx, owner.ID, c.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = f.campaigns.ActiveForGym(ctx, gym.ID)
	assert.ErrorIs(t, err, domain.ErrNoActiveCampaign)

	_, err = f.campaigns.SetActive(ctx, owner.ID, c.ID, true)
	require.NoError(t, err)
	active, err := f.campaigns.ActiveForGym(ctx, gym.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, active.ID)
}
