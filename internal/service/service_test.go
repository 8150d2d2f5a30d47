package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"gymref/config"
	"gymref/internal/cache"
	"gymref/internal/database"
	"gymref/internal/models"
	"gymref/internal/repository"
	"gymref/internal/testutil"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	repos     *repository.Repositories
	auth      *AuthService
	campaigns *CampaignService
	referrals *ReferralService
	rewards   *RewardService
	gyms      *GymService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithDB(t, testutil.NewDB(t))
}

// newFileFixture opens a SQLite file through database.NewDB with the default
// pool settings, the way the server does with DB_DRIVER=sqlite.
func newFileFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Load().Database
	cfg.Driver = "sqlite"
	cfg.DSN = filepath.Join(t.TempDir(), "gymref.db")

	db, err := database.NewDB(&cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	return newFixtureWithDB(t, db)
}

func newFixtureWithDB(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	repos := repository.New(db)
	log, _ := test.NewNullLogger()
	store := cache.New(nil, 1000, time.Minute)
	jwtCfg := &config.JWTConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessExpiry:  time.Hour,
		RefreshExpiry: time.Hour,
		Issuer:        "gymref-test",
	}

	authSvc := NewAuthService(jwtCfg, repos, log)
	authSvc.bcryptCost = bcrypt.MinCost
	return &fixture{
		db:        db,
		repos:     repos,
		auth:      authSvc,
		campaigns: NewCampaignService(repos, log),
		referrals: NewReferralService(repos, store, time.Minute, log),
		rewards:   NewRewardService(repos, store, log),
		gyms:      NewGymService(repos),
		dashboard: NewDashboardService(repos),
	}
}

// issue creates a member through the public flow and returns its code.
func (f *fixture) issue(t *testing.T, gymID string, i int) string {
	t.Helper()
	out, err := f.referrals.IssueCode(context.Background(), IssueCodeInput{GymID: gymID, Name: "Member", Phone: testutil.Phone(i)})
	require.NoError(t, err)
	return out.Code
}

func (f *fixture) verify(t *testing.T, ownerID, code string, i int) *VerifyResult {
	t.Helper()
	res, err := f.referrals.VerifyJoin(context.Background(), ownerID, VerifyJoinInput{Code: code, Phone: testutil.Phone(i)})
	require.NoError(t, err)
	return res
}

func countRewards(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Reward{}).Count(&n).Error)
	return n
}
