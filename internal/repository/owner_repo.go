package repository

import (
	"context"

	"gymref/internal/models"

	"gorm.io/gorm"
)

type OwnerRepository struct {
	db *gorm.DB
}

func NewOwnerRepository(db *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

func (r *OwnerRepository) WithTx(tx *gorm.DB) *OwnerRepository {
	return &OwnerRepository{db: tx}
}

func (r *OwnerRepository) Create(ctx context.Context, o *models.Owner) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	var o models.Owner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OwnerRepository) GetByEmail(ctx context.Context, email string) (*models.Owner, error) {
	var o models.Owner
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OwnerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Owner{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *OwnerRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Owner{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}
