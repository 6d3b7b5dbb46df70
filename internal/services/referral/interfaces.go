package referral

import (
	"context"

	"tutorlink/internal/models"
)

// Repository is the persistence boundary for referrals and the bonus
// ledger. CompleteAndAward must perform the status transition and all
// awards as a single atomic unit.
type Repository interface {
	GetCodeByValue(ctx context.Context, code string) (*models.ReferralCode, error)
	GetReferralByID(ctx context.Context, id uint) (*models.Referral, error)
	GetReferralByReferredID(ctx context.Context, referredID uint) (*models.Referral, error)
	CreateReferral(ctx context.Context, ref *models.Referral) error
	CreateCode(ctx context.Context, code *models.ReferralCode) error
	ListByReferrer(ctx context.Context, referrerID uint) ([]models.Referral, error)

	// CompleteAndAward flips the referral from pending to completed and
	// writes the ledger rows plus wallet credits in one transaction. It
	// returns the persisted ledger entries and the referrer's completed
	// count after the flip. When the guard matches no pending row it
	// returns (nil, 0, ErrAlreadyCompleted) untouched.
	CompleteAndAward(ctx context.Context, referralID uint, buildAwards func(completedCount int) []Award) ([]models.BonusTransaction, int, error)

	CreateBonus(ctx context.Context, bonus *models.BonusTransaction) error
	ListBonuses(ctx context.Context, userID uint) ([]models.BonusTransaction, error)
}

// Service is the referral bonus engine.
type Service interface {
	GenerateCode(ctx context.Context, ownerID uint) (*models.ReferralCode, error)
	TrackReferral(ctx context.Context, code string, referredID uint) (*models.Referral, error)
	CompleteReferral(ctx context.Context, referralID uint) (*CompletionResult, error)
	AwardBonus(ctx context.Context, award Award) (*models.BonusTransaction, error)
	GetReferrals(ctx context.Context, referrerID uint) ([]models.Referral, error)
	GetBonusHistory(ctx context.Context, userID uint) ([]models.BonusTransaction, error)
}
