package repositories

import (
	"context"
	"errors"
	"fmt"

	"tutorlink/internal/models"
	"tutorlink/internal/services/referral"

	"gorm.io/gorm"
)

type referralRepository struct {
	db *gorm.DB
}

// NewReferralRepository creates the referral persistence layer.
func NewReferralRepository(db *gorm.DB) referral.Repository {
	return &referralRepository{db: db}
}

func (r *referralRepository) GetCodeByValue(ctx context.Context, code string) (*models.ReferralCode, error) {
	var rc models.ReferralCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&rc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get referral code: %w", err)
	}
	return &rc, nil
}

func (r *referralRepository) GetReferralByID(ctx context.Context, id uint) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.WithContext(ctx).First(&ref, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	return &ref, nil
}

func (r *referralRepository) GetReferralByReferredID(ctx context.Context, referredID uint) (*models.Referral, error) {
	var ref models.Referral
	if err := r.db.WithContext(ctx).Where("referred_id = ?", referredID).First(&ref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get referral by referred user: %w", err)
	}
	return &ref, nil
}

func (r *referralRepository) CreateReferral(ctx context.Context, ref *models.Referral) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *referralRepository) CreateCode(ctx context.Context, code *models.ReferralCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *referralRepository) ListByReferrer(ctx context.Context, referrerID uint) ([]models.Referral, error) {
	var refs []models.Referral
	err := r.db.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	return refs, nil
}

// CompleteAndAward flips the referral from pending to completed and writes
// the bonus ledger rows plus wallet credits, all inside one transaction.
// The guarded UPDATE makes the transition first-writer-wins: a concurrent
// or repeated call sees zero affected rows and backs out without awarding
// anything.
func (r *referralRepository) CompleteAndAward(ctx context.Context, referralID uint, buildAwards func(completedCount int) []referral.Award) ([]models.BonusTransaction, int, error) {
	var rows []models.BonusTransaction
	var completedCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Referral{}).
			Where("id = ? AND status = ?", referralID, models.ReferralStatusPending).
			Updates(map[string]interface{}{
				"status":       models.ReferralStatusCompleted,
				"completed_at": gorm.Expr("NOW()"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to complete referral: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return referral.ErrAlreadyCompleted
		}

		var ref models.Referral
		if err := tx.First(&ref, referralID).Error; err != nil {
			return fmt.Errorf("failed to reload referral: %w", err)
		}

		var count int64
		err := tx.Model(&models.Referral{}).
			Where("referrer_id = ? AND status = ?", ref.ReferrerID, models.ReferralStatusCompleted).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to count completed referrals: %w", err)
		}
		completedCount = int(count)

		for _, a := range buildAwards(completedCount) {
			bonus := models.BonusTransaction{
				UserID:            a.UserID,
				Amount:            a.Amount,
				Type:              a.Type,
				Reason:            a.Reason,
				RelatedReferralID: a.RelatedReferralID,
			}
			if err := tx.Create(&bonus).Error; err != nil {
				return fmt.Errorf("failed to record bonus: %w", err)
			}
			if err := creditWallet(tx, a.UserID, a.Amount); err != nil {
				return err
			}
			rows = append(rows, bonus)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return rows, completedCount, nil
}

func (r *referralRepository) CreateBonus(ctx context.Context, bonus *models.BonusTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bonus).Error; err != nil {
			return fmt.Errorf("failed to record bonus: %w", err)
		}
		return creditWallet(tx, bonus.UserID, bonus.Amount)
	})
}

func (r *referralRepository) ListBonuses(ctx context.Context, userID uint) ([]models.BonusTransaction, error) {
	var bonuses []models.BonusTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bonuses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	return bonuses, nil
}

// creditWallet adds a bonus amount to the user's wallet, creating the
// wallet on first credit.
func creditWallet(tx *gorm.DB, userID uint, amount float64) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return fmt.Errorf("failed to credit wallet: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		wallet := models.Wallet{UserID: userID, Balance: amount, Currency: "USD", Status: "active"}
		if err := tx.Create(&wallet).Error; err != nil {
			return fmt.Errorf("failed to create wallet: %w", err)
		}
	}
	return nil
}
