package referral

import (
	"context"
	"testing"

	"tutorlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetCodeByValue(ctx context.Context, code string) (*models.ReferralCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReferralCode), args.Error(1)
}

func (m *MockRepo) GetReferralByID(ctx context.Context, id uint) (*models.Referral, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockRepo) GetReferralByReferredID(ctx context.Context, referredID uint) (*models.Referral, error) {
	args := m.Called(ctx, referredID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Referral), args.Error(1)
}

func (m *MockRepo) CreateReferral(ctx context.Context, ref *models.Referral) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockRepo) CreateCode(ctx context.Context, code *models.ReferralCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockRepo) ListByReferrer(ctx context.Context, referrerID uint) ([]models.Referral, error) {
	args := m.Called(ctx, referrerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Referral), args.Error(1)
}

// CompleteAndAward simulates the repository's atomic transition: it invokes
// buildAwards with the configured post-completion count and materializes the
// ledger rows the way the real transaction would.
func (m *MockRepo) CompleteAndAward(ctx context.Context, referralID uint, buildAwards func(completedCount int) []Award) ([]models.BonusTransaction, int, error) {
	args := m.Called(ctx, referralID)
	if args.Error(2) != nil {
		return nil, 0, args.Error(2)
	}
	count := args.Int(1)
	var rows []models.BonusTransaction
	for _, a := range buildAwards(count) {
		rows = append(rows, models.BonusTransaction{
			UserID:            a.UserID,
			Amount:            a.Amount,
			Type:              a.Type,
			Reason:            a.Reason,
			RelatedReferralID: a.RelatedReferralID,
		})
	}
	return rows, count, nil
}

func (m *MockRepo) CreateBonus(ctx context.Context, bonus *models.BonusTransaction) error {
	args := m.Called(ctx, bonus)
	return args.Error(0)
}

func (m *MockRepo) ListBonuses(ctx context.Context, userID uint) ([]models.BonusTransaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BonusTransaction), args.Error(1)
}

func TestService_TrackReferral(t *testing.T) {
	activeCode := &models.ReferralCode{Code: "WELCOME1", OwnerID: 1, Active: true}

	tests := []struct {
		name       string
		code       string
		referredID uint
		setupMock  func(*MockRepo)
		wantErr    error
	}{
		{
			name:       "successful referral",
			code:       "WELCOME1",
			referredID: 2,
			setupMock: func(repo *MockRepo) {
				repo.On("GetCodeByValue", mock.Anything, "WELCOME1").Return(activeCode, nil)
				repo.On("GetReferralByReferredID", mock.Anything, uint(2)).Return(nil, nil)
				repo.On("CreateReferral", mock.Anything, mock.MatchedBy(func(r *models.Referral) bool {
					return r.ReferrerID == 1 && r.ReferredID == 2 && r.Status == models.ReferralStatusPending
				})).Return(nil)
			},
		},
		{
			name:       "unknown code",
			code:       "NOPE",
			referredID: 2,
			setupMock: func(repo *MockRepo) {
				repo.On("GetCodeByValue", mock.Anything, "NOPE").Return(nil, nil)
			},
			wantErr: ErrInvalidCode,
		},
		{
			name:       "inactive code",
			code:       "OLD1",
			referredID: 2,
			setupMock: func(repo *MockRepo) {
				repo.On("GetCodeByValue", mock.Anything, "OLD1").
					Return(&models.ReferralCode{Code: "OLD1", OwnerID: 1, Active: false}, nil)
			},
			wantErr: ErrInvalidCode,
		},
		{
			name:       "self referral",
			code:       "WELCOME1",
			referredID: 1,
			setupMock: func(repo *MockRepo) {
				repo.On("GetCodeByValue", mock.Anything, "WELCOME1").Return(activeCode, nil)
			},
			wantErr: ErrSelfReferral,
		},
		{
			name:       "already referred",
			code:       "WELCOME1",
			referredID: 2,
			setupMock: func(repo *MockRepo) {
				repo.On("GetCodeByValue", mock.Anything, "WELCOME1").Return(activeCode, nil)
				repo.On("GetReferralByReferredID", mock.Anything, uint(2)).
					Return(&models.Referral{ReferrerID: 3, ReferredID: 2}, nil)
			},
			wantErr: ErrAlreadyReferred,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := NewService(repo)
			ref, err := svc.TrackReferral(context.Background(), tt.code, tt.referredID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.ReferralStatusPending, ref.Status)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_TrackReferral_DistinctErrors(t *testing.T) {
	// Self-referral and double-referral must be distinguishable to callers.
	assert.NotEqual(t, ErrSelfReferral.Error(), ErrAlreadyReferred.Error())
}

func TestService_CompleteReferral(t *testing.T) {
	pending := &models.Referral{ID: 10, ReferrerID: 1, ReferredID: 2, Code: "WELCOME1", Status: models.ReferralStatusPending}
	completed := &models.Referral{ID: 10, ReferrerID: 1, ReferredID: 2, Code: "WELCOME1", Status: models.ReferralStatusCompleted}

	tests := []struct {
		name           string
		completedCount int
		wantAwards     int
		wantMilestone  float64
	}{
		{name: "1st completion pays standard bonuses only", completedCount: 1, wantAwards: 2},
		{name: "4th completion pays no milestone", completedCount: 4, wantAwards: 2},
		{name: "5th completion pays 25 milestone", completedCount: 5, wantAwards: 3, wantMilestone: 25},
		{name: "6th completion pays no milestone", completedCount: 6, wantAwards: 2},
		{name: "10th completion pays 50 milestone", completedCount: 10, wantAwards: 3, wantMilestone: 50},
		{name: "25th completion pays 100 milestone", completedCount: 25, wantAwards: 3, wantMilestone: 100},
		{name: "50th completion pays 250 milestone", completedCount: 50, wantAwards: 3, wantMilestone: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			repo.On("GetReferralByID", mock.Anything, uint(10)).Return(pending, nil).Once()
			repo.On("CompleteAndAward", mock.Anything, uint(10)).Return(nil, tt.completedCount, nil)
			repo.On("GetReferralByID", mock.Anything, uint(10)).Return(completed, nil)

			svc := NewService(repo)
			result, err := svc.CompleteReferral(context.Background(), 10)
			require.NoError(t, err)

			assert.Equal(t, models.ReferralStatusCompleted, result.Referral.Status)
			assert.Equal(t, tt.completedCount, result.CompletedCount)
			require.Len(t, result.Awards, tt.wantAwards)

			byType := map[string]models.BonusTransaction{}
			for _, a := range result.Awards {
				byType[a.Type] = a
			}

			referrer := byType[models.BonusTypeReferral]
			assert.Equal(t, uint(1), referrer.UserID)
			assert.Equal(t, 10.00, referrer.Amount)

			welcome := byType[models.BonusTypeWelcome]
			assert.Equal(t, uint(2), welcome.UserID)
			assert.Equal(t, 5.00, welcome.Amount)

			if tt.wantMilestone > 0 {
				milestone := byType[models.BonusTypeMilestone]
				assert.Equal(t, uint(1), milestone.UserID)
				assert.Equal(t, tt.wantMilestone, milestone.Amount)
			} else {
				assert.NotContains(t, byType, models.BonusTypeMilestone)
			}
		})
	}
}

func TestService_CompleteReferral_Unknown(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetReferralByID", mock.Anything, uint(99)).Return(nil, nil)

	svc := NewService(repo)
	_, err := svc.CompleteReferral(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_CompleteReferral_SecondCallDoesNotDoubleAward(t *testing.T) {
	completed := &models.Referral{ID: 10, ReferrerID: 1, ReferredID: 2, Status: models.ReferralStatusCompleted}

	repo := new(MockRepo)
	repo.On("GetReferralByID", mock.Anything, uint(10)).Return(completed, nil)
	repo.On("CompleteAndAward", mock.Anything, uint(10)).Return(nil, 0, ErrAlreadyCompleted)

	svc := NewService(repo)
	_, err := svc.CompleteReferral(context.Background(), 10)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestService_AwardBonus(t *testing.T) {
	tests := []struct {
		name    string
		award   Award
		wantErr error
	}{
		{
			name:  "valid tier bonus",
			award: Award{UserID: 1, Amount: 15, Type: models.BonusTypeTier, Reason: "gold tier"},
		},
		{
			name:    "zero amount",
			award:   Award{UserID: 1, Amount: 0, Type: models.BonusTypeTier},
			wantErr: ErrInvalidBonusAmount,
		},
		{
			name:    "negative amount",
			award:   Award{UserID: 1, Amount: -5, Type: models.BonusTypeTier},
			wantErr: ErrInvalidBonusAmount,
		},
		{
			name:    "unknown type",
			award:   Award{UserID: 1, Amount: 5, Type: "loyalty_bonus"},
			wantErr: ErrInvalidBonusType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepo)
			if tt.wantErr == nil {
				repo.On("CreateBonus", mock.Anything, mock.Anything).Return(nil)
			}

			svc := NewService(repo)
			bonus, err := svc.AwardBonus(context.Background(), tt.award)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.award.Amount, bonus.Amount)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GenerateCode(t *testing.T) {
	repo := new(MockRepo)
	repo.On("CreateCode", mock.Anything, mock.MatchedBy(func(c *models.ReferralCode) bool {
		return c.OwnerID == 4 && c.Active && len(c.Code) == 8
	})).Return(nil)

	svc := NewService(repo)
	code, err := svc.GenerateCode(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, code.Code, 8)
	repo.AssertExpectations(t)
}
