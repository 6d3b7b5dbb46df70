package reputation

import (
	"context"
	"time"

	"tutorlink/internal/models"
)

// MetricsRepository persists per-user performance counters.
type MetricsRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.UserMetrics, error)
	Save(ctx context.Context, metrics *models.UserMetrics) error
}

// CacheOperator caches derived reputation scores.
type CacheOperator interface {
	GetScore(ctx context.Context, userID uint) (int, bool, error)
	SetScore(ctx context.Context, userID uint, score int, ttl time.Duration) error
	InvalidateScore(ctx context.Context, userID uint) error
}

// Service tracks performance counters and exposes the derived score.
type Service interface {
	GetScore(ctx context.Context, userID uint) (int, error)
	GetMetrics(ctx context.Context, userID uint) (*models.UserMetrics, error)
	RecordCompletion(ctx context.Context, userID uint, successful, onTime bool, responseMinutes float64) (int, error)
	RecordRating(ctx context.Context, userID uint, rating float64) (int, error)
}
