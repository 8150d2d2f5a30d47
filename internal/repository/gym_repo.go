package repository

import (
	"context"

	"gymref/internal/models"

	"gorm.io/gorm"
)

type GymRepository struct {
	db *gorm.DB
}

func NewGymRepository(db *gorm.DB) *GymRepository {
	return &GymRepository{db: db}
}

func (r *GymRepository) WithTx(tx *gorm.DB) *GymRepository {
	return &GymRepository{db: tx}
}

func (r *GymRepository) Create(ctx context.Context, g *models.Gym) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GymRepository) GetByID(ctx context.Context, id string) (*models.Gym, error) {
	var g models.Gym
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// FirstByOwner returns the owner's oldest gym. Signup creates exactly one.
func (r *GymRepository) FirstByOwner(ctx context.Context, ownerID string) (*models.Gym, error) {
	var g models.Gym
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").Order("id ASC").
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}
