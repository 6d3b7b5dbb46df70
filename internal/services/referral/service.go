// Package referral implements the referral bonus engine: invite codes,
// tracked referrals, and the fixed and milestone bonuses paid out when a
// referral completes.
package referral

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tutorlink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
}

// NewService creates the referral bonus engine.
func NewService(repo Repository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// GenerateCode mints a new shareable invite code for a user.
func (s *service) GenerateCode(ctx context.Context, ownerID uint) (*models.ReferralCode, error) {
	code := &models.ReferralCode{
		Code:    strings.ToUpper(uuid.NewString()[:8]),
		OwnerID: ownerID,
		Active:  true,
	}
	if err := s.repo.CreateCode(ctx, code); err != nil {
		return nil, fmt.Errorf("failed to create referral code: %w", err)
	}
	return code, nil
}

// TrackReferral records that a new user signed up through a code. The
// referral starts pending and completes when the referred user finishes
// their first qualifying order.
func (s *service) TrackReferral(ctx context.Context, code string, referredID uint) (*models.Referral, error) {
	refCode, err := s.repo.GetCodeByValue(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up referral code: %w", err)
	}
	if refCode == nil || !refCode.Active {
		return nil, ErrInvalidCode
	}

	if refCode.OwnerID == referredID {
		return nil, ErrSelfReferral
	}

	existing, err := s.repo.GetReferralByReferredID(ctx, referredID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing referral: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyReferred
	}

	ref := &models.Referral{
		ReferrerID: refCode.OwnerID,
		ReferredID: referredID,
		Code:       refCode.Code,
		Status:     models.ReferralStatusPending,
	}
	if err := s.repo.CreateReferral(ctx, ref); err != nil {
		// The unique index on referred_id closes the race between the
		// existence check above and the insert.
		if isDuplicateErr(err) {
			return nil, ErrAlreadyReferred
		}
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	return ref, nil
}

// CompleteReferral transitions a referral from pending to completed and
// awards all bonuses. The transition is guarded on the pending status and
// runs together with the awards in one transaction, so calling it twice
// pays out only once.
func (s *service) CompleteReferral(ctx context.Context, referralID uint) (*CompletionResult, error) {
	ref, err := s.repo.GetReferralByID(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("failed to get referral: %w", err)
	}
	if ref == nil {
		return nil, ErrNotFound
	}

	refID := ref.ID
	awards, count, err := s.repo.CompleteAndAward(ctx, referralID, func(completedCount int) []Award {
		built := []Award{
			{
				UserID:            ref.ReferrerID,
				Amount:            ReferrerBonus,
				Type:              models.BonusTypeReferral,
				Reason:            fmt.Sprintf("referral %s completed", ref.Code),
				RelatedReferralID: &refID,
			},
			{
				UserID:            ref.ReferredID,
				Amount:            WelcomeBonus,
				Type:              models.BonusTypeWelcome,
				Reason:            "welcome bonus for joining through a referral",
				RelatedReferralID: &refID,
			},
		}
		if amount, ok := milestoneBonuses[completedCount]; ok {
			built = append(built, Award{
				UserID:            ref.ReferrerID,
				Amount:            amount,
				Type:              models.BonusTypeMilestone,
				Reason:            fmt.Sprintf("reached %d completed referrals", completedCount),
				RelatedReferralID: &refID,
			})
		}
		return built
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.GetReferralByID(ctx, referralID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload referral: %w", err)
	}

	return &CompletionResult{
		Referral:       updated,
		Awards:         awards,
		CompletedCount: count,
	}, nil
}

// AwardBonus writes a standalone ledger entry, e.g. a tier bonus granted by
// an admin. Referral completion bonuses go through CompleteReferral instead.
func (s *service) AwardBonus(ctx context.Context, award Award) (*models.BonusTransaction, error) {
	if award.Amount <= 0 {
		return nil, ErrInvalidBonusAmount
	}
	if !validBonusTypes[award.Type] {
		return nil, ErrInvalidBonusType
	}

	bonus := &models.BonusTransaction{
		UserID:            award.UserID,
		Amount:            award.Amount,
		Type:              award.Type,
		Reason:            award.Reason,
		RelatedReferralID: award.RelatedReferralID,
	}
	if err := s.repo.CreateBonus(ctx, bonus); err != nil {
		return nil, fmt.Errorf("failed to record bonus: %w", err)
	}
	return bonus, nil
}

func (s *service) GetReferrals(ctx context.Context, referrerID uint) ([]models.Referral, error) {
	refs, err := s.repo.ListByReferrer(ctx, referrerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	return refs, nil
}

func (s *service) GetBonusHistory(ctx context.Context, userID uint) ([]models.BonusTransaction, error) {
	bonuses, err := s.repo.ListBonuses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonuses: %w", err)
	}
	return bonuses, nil
}

func isDuplicateErr(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
