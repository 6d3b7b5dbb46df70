package reputation

import (
	"context"
	"testing"
	"time"

	"tutorlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMetricsRepo struct {
	mock.Mock
}

func (m *MockMetricsRepo) GetByUserID(ctx context.Context, userID uint) (*models.UserMetrics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserMetrics), args.Error(1)
}

func (m *MockMetricsRepo) Save(ctx context.Context, metrics *models.UserMetrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

type MockScoreCache struct {
	mock.Mock
}

func (m *MockScoreCache) GetScore(ctx context.Context, userID uint) (int, bool, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockScoreCache) SetScore(ctx context.Context, userID uint, score int, ttl time.Duration) error {
	args := m.Called(ctx, userID, score, ttl)
	return args.Error(0)
}

func (m *MockScoreCache) InvalidateScore(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func metricsFor(completed int, avgRating, successRate, onTimeRate, avgResponse float64) models.UserMetrics {
	// Build counters that reproduce the requested derived values.
	return models.UserMetrics{
		ServicesCompleted:  completed,
		SuccessfulServices: int(successRate * float64(completed) / 100),
		OnTimeDeliveries:   int(onTimeRate * float64(completed) / 100),
		RatingSum:          avgRating * float64(completed),
		RatingCount:        completed,
		ResponseMinutesSum: avgResponse * float64(completed),
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		metrics models.UserMetrics
		want    int
	}{
		{
			name:    "zero metrics",
			metrics: models.UserMetrics{},
			want:    0,
		},
		{
			name:    "perfect small account",
			metrics: metricsFor(5, 5.0, 100, 100, 30),
			// 10 + 500 + 300 + 200 + 100
			want: 1110,
		},
		{
			name:    "high volume veteran",
			metrics: metricsFor(100, 4.9, 98, 95, 30),
			// 200 + 490 + 294 + 190 + 100
			want: 1274,
		},
		{
			name: "no responses recorded earns no response bonus",
			metrics: models.UserMetrics{
				ServicesCompleted:  10,
				SuccessfulServices: 10,
				OnTimeDeliveries:   10,
			},
			// 20 + 0 + 300 + 200 + 0
			want: 520,
		},
		{
			name:    "slow responder earns no response bonus",
			metrics: metricsFor(10, 4.0, 100, 100, 500),
			// 20 + 400 + 300 + 200 + 0
			want: 920,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.metrics))
		})
	}
}

// A large completed-service count outweighs perfect quality on a small one.
func TestScore_CompletedCountDominance(t *testing.T) {
	veteran := metricsFor(100, 4.9, 98, 95, 30)
	newcomer := metricsFor(5, 5.0, 100, 100, 30)
	assert.Greater(t, Score(veteran), Score(newcomer))
}

func TestScore_ResponseTimeTiers(t *testing.T) {
	base := func(avgResponse float64) models.UserMetrics {
		return models.UserMetrics{
			ServicesCompleted:  1,
			ResponseMinutesSum: avgResponse,
		}
	}

	tests := []struct {
		avgMinutes float64
		wantBonus  int
	}{
		{15, 100},
		{30, 100},
		{31, 75},
		{60, 75},
		{90, 50},
		{120, 50},
		{180, 25},
		{240, 25},
		{241, 0},
	}

	for _, tt := range tests {
		got := Score(base(tt.avgMinutes)) - 2 // strip the per-service points
		assert.Equal(t, tt.wantBonus, got, "avgMinutes=%v", tt.avgMinutes)
	}
}

func TestService_RecordCompletion(t *testing.T) {
	repo := new(MockMetricsRepo)
	svc := NewService(repo, nil)

	repo.On("GetByUserID", mock.Anything, uint(7)).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(m *models.UserMetrics) bool {
		return m.UserID == 7 && m.ServicesCompleted == 1 &&
			m.SuccessfulServices == 1 && m.OnTimeDeliveries == 1 &&
			m.ResponseMinutesSum == 20
	})).Return(nil)

	score, err := svc.RecordCompletion(context.Background(), 7, true, true, 20)
	require.NoError(t, err)
	// 2 + 0 + 300 + 200 + 100
	assert.Equal(t, 602, score)
	repo.AssertExpectations(t)
}

func TestService_RecordCompletion_NegativeResponseTime(t *testing.T) {
	repo := new(MockMetricsRepo)
	svc := NewService(repo, nil)

	_, err := svc.RecordCompletion(context.Background(), 7, true, true, -1)
	assert.ErrorIs(t, err, ErrInvalidResponseTime)
}

func TestService_RecordRating(t *testing.T) {
	repo := new(MockMetricsRepo)
	svc := NewService(repo, nil)

	existing := &models.UserMetrics{
		UserID:            3,
		ServicesCompleted: 2,
		RatingSum:         4,
		RatingCount:       1,
	}
	repo.On("GetByUserID", mock.Anything, uint(3)).Return(existing, nil)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(m *models.UserMetrics) bool {
		return m.RatingCount == 2 && m.RatingSum == 9
	})).Return(nil)

	score, err := svc.RecordRating(context.Background(), 3, 5)
	require.NoError(t, err)
	// 4 points for services + 100*4.5 average rating
	assert.Equal(t, 454, score)
	repo.AssertExpectations(t)
}

func TestService_RecordRating_OutOfRange(t *testing.T) {
	svc := NewService(new(MockMetricsRepo), nil)

	_, err := svc.RecordRating(context.Background(), 3, 5.5)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.RecordRating(context.Background(), 3, -0.1)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestService_GetScore_CacheHit(t *testing.T) {
	repo := new(MockMetricsRepo)
	cache := new(MockScoreCache)
	svc := NewService(repo, cache)

	cache.On("GetScore", mock.Anything, uint(9)).Return(1234, true, nil)

	score, err := svc.GetScore(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 1234, score)
	repo.AssertNotCalled(t, "GetByUserID")
	cache.AssertExpectations(t)
}

func TestService_GetScore_NoActivity(t *testing.T) {
	repo := new(MockMetricsRepo)
	svc := NewService(repo, nil)

	repo.On("GetByUserID", mock.Anything, uint(9)).Return(nil, nil)

	score, err := svc.GetScore(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}
