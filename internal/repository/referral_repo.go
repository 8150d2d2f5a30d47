package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"gymref/internal/domain"
	"gymref/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCodeExhausted means every generated code collided with an existing one.
var ErrCodeExhausted = errors.New("failed to generate a unique referral code after retries")

type ReferralRepository struct {
	db *gorm.DB
	// generate is swapped in tests to force collisions.
	generate func() (string, error)
}

func NewReferralRepository(db *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: db, generate: GenerateReferralCode}
}

func (r *ReferralRepository) WithTx(tx *gorm.DB) *ReferralRepository {
	return &ReferralRepository{db: tx, generate: r.generate}
}

// GenerateReferralCode returns an 8-character code from [A-Z0-9].
func GenerateReferralCode() (string, error) {
	alphabet := domain.ReferralCodeAlphabet
	max := big.NewInt(int64(len(alphabet)))
	b := make([]byte, domain.ReferralCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b), nil
}

func (r *ReferralRepository) GetByMemberCampaign(ctx context.Context, memberID, campaignID string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND campaign_id = ?", memberID, campaignID).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// GetOrCreateCode returns the member's code for the campaign, creating a new
// unique one when absent. Inserts are conflict-safe on (member_id,
// campaign_id); a collision on the global code index is retried with a
// fresh code.
func (r *ReferralRepository) GetOrCreateCode(ctx context.Context, memberID, campaignID string) (*models.ReferralCode, bool, error) {
	rc, err := r.GetByMemberCampaign(ctx, memberID, campaignID)
	if err == nil {
		return rc, false, nil
	}
	if !IsNotFound(err) {
		return nil, false, err
	}

	for i := 0; i < domain.MaxCodeAttempts; i++ {
		code, err := r.generate()
		if err != nil {
			return nil, false, err
		}
		rc = &models.ReferralCode{MemberID: memberID, CampaignID: campaignID, Code: code}
		res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_id"}, {Name: "campaign_id"}},
			DoNothing: true,
		}).Create(rc)
		if res.Error != nil {
			if IsDuplicate(res.Error) {
				continue // Collision on code: retry with a new one
			}
			return nil, false, res.Error
		}
		if res.RowsAffected == 1 {
			return rc, true, nil
		}
		// Nothing inserted: either a concurrent issue won the pair, or (MySQL
		// turns every duplicate into a no-op) the code collided.
		existing, err := r.GetByMemberCampaign(ctx, memberID, campaignID)
		if err == nil {
			return existing, false, nil
		}
		if !IsNotFound(err) {
			return nil, false, err
		}
	}
	return nil, false, ErrCodeExhausted
}

// GetByCode returns the code with its campaign.
func (r *ReferralRepository) GetByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		Where("code = ?", code).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// GetDetailsByCode loads the code with member, campaign and reward.
func (r *ReferralRepository) GetDetailsByCode(ctx context.Context, code string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.WithContext(ctx).
		Preload("Member").
		Preload("Campaign").
		Preload("Reward").
		Where("code = ?", code).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// LockByID reads the code row with SELECT ... FOR UPDATE. Must run inside a
// transaction; verifications of one code serialise on this lock.
func (r *ReferralRepository) LockByID(ctx context.Context, id string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&rc).Error
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

func (r *ReferralRepository) JoinExists(ctx context.Context, codeID, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReferralJoin{}).
		Where("referral_code_id = ? AND joined_member_phone = ?", codeID, phone).
		Count(&count).Error
	return count > 0, err
}

func (r *ReferralRepository) CreateJoin(ctx context.Context, j *models.ReferralJoin) error {
	return r.db.WithContext(ctx).Create(j).Error
}

// IncrementJoinCount atomically adds one verified join and returns the new count.
func (r *ReferralRepository) IncrementJoinCount(ctx context.Context, id string) (int, error) {
	db := r.db.WithContext(ctx)
	err := db.Model(&models.ReferralCode{}).
		Where("id = ?", id).
		UpdateColumn("join_count", gorm.Expr("join_count + ?", 1)).Error
	if err != nil {
		return 0, err
	}
	var rc models.ReferralCode
	err = db.Select("id", "join_count").Where("id = ?", id).First(&rc).Error
	return rc.JoinCount, err
}

func (r *ReferralRepository) CountJoins(ctx context.Context, codeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ReferralJoin{}).
		Where("referral_code_id = ?", codeID).
		Count(&count).Error
	return count, err
}
