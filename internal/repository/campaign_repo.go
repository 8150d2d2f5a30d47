package repository

import (
	"context"

	"gymref/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *models.Campaign) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByGym returns the gym's campaigns, newest first.
func (r *CampaignRepository) ListByGym(ctx context.Context, gymID string) ([]models.Campaign, error) {
	var list []models.Campaign
	err := r.db.WithContext(ctx).
		Where("gym_id = ?", gymID).
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error
	return list, err
}

// LatestActive selects the gym's active campaign: the most recently created
// campaign with is_active set, ties broken by id.
func (r *CampaignRepository) LatestActive(ctx context.Context, gymID string) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND is_active = ?", gymID, true).
		Order("created_at DESC").Order("id DESC").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
