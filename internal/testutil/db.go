// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"gymref/internal/database"
	"gymref/internal/domain"
	"gymref/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated SQLite in-memory database private to the test.
// A single connection serialises transactions, standing in for row locks.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db), "failed to migrate test database")

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Password is the plain-text password of owners created by CreateOwner.
const Password = "secret123"

// CreateOwner inserts an owner with one gym.
func CreateOwner(t *testing.T, db *gorm.DB, email string) (*models.Owner, *models.Gym) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	owner := &models.Owner{Name: "Owner " + email, Email: email, PasswordHash: string(hash), Role: domain.RoleOwner}
	require.NoError(t, db.Create(owner).Error)

	gym := &models.Gym{Name: "Gym of " + email, OwnerID: owner.ID}
	require.NoError(t, db.Create(gym).Error)
	return owner, gym
}

// CreateCampaign inserts a campaign for gym. createdAt orders "latest active".
func CreateCampaign(t *testing.T, db *gorm.DB, gymID string, target int, active bool, createdAt time.Time) *models.Campaign {
	t.Helper()

	c := &models.Campaign{
		GymID:       gymID,
		Title:       "Bring a friend",
		RewardName:  "Free month",
		TargetJoins: target,
		IsActive:    active,
		CreatedAt:   createdAt,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Phone returns a distinct 10 digit phone number.
func Phone(i int) string {
	return fmt.Sprintf("07%08d", i)
}
