package repository

import (
	"context"

	"gymref/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) GetByGymPhone(ctx context.Context, gymID, phone string) (*models.Member, error) {
	var m models.Member
	err := r.db.WithContext(ctx).Where("gym_id = ? AND phone = ?", gymID, phone).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetOrCreate returns the member for (gym, phone), inserting one named name
// when absent. The insert is conflict-safe on the unique (gym_id, phone)
// index, so concurrent first scans converge on one row. An existing member
// keeps its name.
func (r *MemberRepository) GetOrCreate(ctx context.Context, gymID, name, phone string) (*models.Member, bool, error) {
	m, err := r.GetByGymPhone(ctx, gymID, phone)
	if err == nil {
		return m, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, err
	}

	m = &models.Member{GymID: gymID, Name: name, Phone: phone}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "gym_id"}, {Name: "phone"}},
		DoNothing: true,
	}).Create(m)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 1 {
		return m, true, nil
	}
	m, err = r.GetByGymPhone(ctx, gymID, phone)
	return m, false, err
}

// ListByGym returns the gym's members, newest first, with their referral codes.
func (r *MemberRepository) ListByGym(ctx context.Context, gymID string) ([]models.Member, error) {
	var list []models.Member
	err := r.db.WithContext(ctx).
		Where("gym_id = ?", gymID).
		Preload("ReferralCodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("ReferralCodes.Campaign").
		Order("created_at DESC").Order("id DESC").
		Find(&list).Error
	return list, err
}
