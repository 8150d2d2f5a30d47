package repository

import (
	"context"
	"testing"
	"time"

	"gymref/internal/domain"
	"gymref/internal/models"
	"gymref/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCode(t *testing.T, db *gorm.DB, target int) (*models.Gym, *models.Campaign, *models.ReferralCode) {
	t.Helper()
	_, gym := testutil.CreateOwner(t, db, "owner@example.com")
	campaign := testutil.CreateCampaign(t, db, gym.ID, target, true, time.Now())
	member := &models.Member{GymID: gym.ID, Name: "Ann", Phone: testutil.Phone(1)}
	require.NoError(t, db.Create(member).Error)
	rc, created, err := NewReferralRepository(db).GetOrCreateCode(context.Background(), member.ID, campaign.ID)
	require.NoError(t, err)
	require.True(t, created)
	return gym, campaign, rc
}

func TestGenerateReferralCode_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := GenerateReferralCode()
		require.NoError(t, err)
		assert.Len(t, code, domain.ReferralCodeLength)
		assert.Regexp(t, `^[A-Z0-9]{8}$`, code)
	}
}

func TestMemberRepository_GetOrCreate_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, gym := testutil.CreateOwner(t, db, "owner@example.com")
	repo := NewMemberRepository(db)

	first, created, err := repo.GetOrCreate(ctx, gym.ID, "Ann", testutil.Phone(1))
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := repo.GetOrCreate(ctx, gym.ID, "Someone Else", testutil.Phone(1))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ann", second.Name, "existing member keeps its name")

	var count int64
	db.Model(&models.Member{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMemberRepository_SamePhoneDifferentGyms(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, gymA := testutil.CreateOwner(t, db, "a@example.com")
	_, gymB := testutil.CreateOwner(t, db, "b@example.com")
	repo := NewMemberRepository(db)

	a, _, err := repo.GetOrCreate(ctx, gymA.ID, "Ann", testutil.Phone(1))
	require.NoError(t, err)
	b, created, err := repo.GetOrCreate(ctx, gymB.ID, "Ann", testutil.Phone(1))
	require.NoError(t, err)

	assert.True(t, created)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCampaignRepository_LatestActive(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, gym := testutil.CreateOwner(t, db, "owner@example.com")
	base := time.Now().Add(-time.Hour)
	testutil.CreateCampaign(t, db, gym.ID, 3, true, base)
	newest := testutil.CreateCampaign(t, db, gym.ID, 5, true, base.Add(10*time.Minute))
	testutil.CreateCampaign(t, db, gym.ID, 1, false, base.Add(20*time.Minute))
	repo := NewCampaignRepository(db)

	got, err := repo.LatestActive(ctx, gym.ID)
	require.NoError(t, err)
	assert.Equal(t, newest.ID, got.ID)

	require.NoError(t, repo.SetActive(ctx, newest.ID, false))
	got, err = repo.LatestActive(ctx, gym.ID)
	require.NoError(t, err)
	assert.NotEqual(t, newest.ID, got.ID)
	assert.Equal(t, 3, got.TargetJoins)
}

func TestCampaignRepository_LatestActive_None(t *testing.T) {
	db := testutil.NewDB(t)
	_, gym := testutil.CreateOwner(t, db, "owner@example.com")
	testutil.CreateCampaign(t, db, gym.ID, 3, false, time.Now())

	_, err := NewCampaignRepository(db).LatestActive(context.Background(), gym.ID)
	assert.True(t, IsNotFound(err))
}

func TestReferralRepository_GetOrCreateCode_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	_, campaign, rc := seedCode(t, db, 3)

	again, created, err := NewReferralRepository(db).GetOrCreateCode(context.Background(), rc.MemberID, campaign.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, rc.Code, again.Code)
	assert.Equal(t, rc.ID, again.ID)
}

func TestReferralRepository_GetOrCreateCode_RetriesOnCollision(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	gym, campaign, rc := seedCode(t, db, 3)
	other := &models.Member{GymID: gym.ID, Name: "Bob", Phone: testutil.Phone(2)}
	require.NoError(t, db.Create(other).Error)

	codes := []string{rc.Code, rc.Code, "ZZZZ9999"}
	repo := NewReferralRepository(db)
	repo.generate = func() (string, error) {
		next := codes[0]
		codes = codes[1:]
		return next, nil
	}

	got, created, err := repo.GetOrCreateCode(ctx, other.ID, campaign.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "ZZZZ9999", got.Code)
}

func TestReferralRepository_GetOrCreateCode_Exhausted(t *testing.T) {
	db := testutil.NewDB(t)
	gym, campaign, rc := seedCode(t, db, 3)
	other := &models.Member{GymID: gym.ID, Name: "Bob", Phone: testutil.Phone(2)}
	require.NoError(t, db.Create(other).Error)

	repo := NewReferralRepository(db)
	calls := 0
	repo.generate = func() (string, error) {
		calls++
		return rc.Code, nil
	}

	_, _, err := repo.GetOrCreateCode(context.Background(), other.ID, campaign.ID)
	assert.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, domain.MaxCodeAttempts, calls)
}

func TestReferralRepository_JoinsAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, _, rc := seedCode(t, db, 3)
	repo := NewReferralRepository(db)

	join := &models.ReferralJoin{ReferralCodeID: rc.ID, JoinedMemberPhone: testutil.Phone(9), VerifiedByStaff: true, VerifiedAt: time.Now()}
	require.NoError(t, repo.CreateJoin(ctx, join))

	exists, err := repo.JoinExists(ctx, rc.ID, testutil.Phone(9))
	require.NoError(t, err)
	assert.True(t, exists)

	dup := &models.ReferralJoin{ReferralCodeID: rc.ID, JoinedMemberPhone: testutil.Phone(9), VerifiedByStaff: true, VerifiedAt: time.Now()}
	assert.True(t, IsDuplicate(repo.CreateJoin(ctx, dup)), "unique (code, phone) index")

	n, err := repo.IncrementJoinCount(ctx, rc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = repo.IncrementJoinCount(ctx, rc.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReferralRepository_LockByIDInTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, _, rc := seedCode(t, db, 3)
	repo := NewReferralRepository(db)

	err := NewTransactor(db).InTransaction(ctx, func(tx *gorm.DB) error {
		locked, err := repo.WithTx(tx).LockByID(ctx, rc.ID)
		require.NoError(t, err)
		assert.Equal(t, rc.Code, locked.Code)
		return nil
	})
	require.NoError(t, err)
}

func TestRewardRepository_UnlockIfAbsent_ExactlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, _, rc := seedCode(t, db, 1)
	repo := NewRewardRepository(db)

	first, created, err := repo.UnlockIfAbsent(ctx, rc.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.RewardStatusUnlocked, first.Status)

	second, created, err := repo.UnlockIfAbsent(ctx, rc.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Reward{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRewardRepository_MarkGiven_OnlyFromUnlocked(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	_, _, rc := seedCode(t, db, 1)
	repo := NewRewardRepository(db)
	reward, _, err := repo.UnlockIfAbsent(ctx, rc.ID, time.Now())
	require.NoError(t, err)

	ok, err := repo.MarkGiven(ctx, reward.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.MarkGiven(ctx, reward.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetWithCampaign(ctx, reward.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RewardStatusGiven, got.Status)
	require.NotNil(t, got.GivenAt)
	require.NotNil(t, got.ReferralCode)
	require.NotNil(t, got.ReferralCode.Campaign)
}

func TestRewardRepository_ListByGym_ScopedToGym(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	gym, _, rc := seedCode(t, db, 1)
	_, otherGym := testutil.CreateOwner(t, db, "other@example.com")
	repo := NewRewardRepository(db)
	_, _, err := repo.UnlockIfAbsent(ctx, rc.ID, time.Now())
	require.NoError(t, err)

	list, err := repo.ListByGym(ctx, gym.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", list[0].ReferralCode.Member.Name)

	list, err = repo.ListByGym(ctx, otherGym.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStatsRepository_Counts(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	gym, _, rc := seedCode(t, db, 1)
	refs := NewReferralRepository(db)
	require.NoError(t, refs.CreateJoin(ctx, &models.ReferralJoin{ReferralCodeID: rc.ID, JoinedMemberPhone: testutil.Phone(5), VerifiedByStaff: true, VerifiedAt: time.Now()}))
	_, err := refs.IncrementJoinCount(ctx, rc.ID)
	require.NoError(t, err)
	_, _, err = NewRewardRepository(db).UnlockIfAbsent(ctx, rc.ID, time.Now())
	require.NoError(t, err)
	stats := NewStatsRepository(db)

	members, err := stats.CountMembers(ctx, gym.ID)
	require.NoError(t, err)
	codes, err := stats.CountCodes(ctx, gym.ID)
	require.NoError(t, err)
	referrers, err := stats.CountActiveReferrers(ctx, gym.ID)
	require.NoError(t, err)
	joins, err := stats.CountVerifiedJoins(ctx, gym.ID)
	require.NoError(t, err)
	rewards, err := stats.CountRewards(ctx, gym.ID, domain.RewardStatusUnlocked, domain.RewardStatusGiven)
	require.NoError(t, err)
	given, err := stats.CountRewards(ctx, gym.ID, domain.RewardStatusGiven)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 1, 1, 1, 1, 0}, []int64{members, codes, referrers, joins, rewards, given})
}

func TestIsDuplicate(t *testing.T) {
	assert.False(t, IsDuplicate(nil))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicate(gorm.ErrRecordNotFound))
}
