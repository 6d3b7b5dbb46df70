package repositories

import (
	"context"
	"errors"
	"fmt"

	"tutorlink/internal/models"
	"tutorlink/internal/services/reputation"

	"gorm.io/gorm"
)

type metricsRepository struct {
	db *gorm.DB
}

// NewMetricsRepository creates the user-metrics persistence layer.
func NewMetricsRepository(db *gorm.DB) reputation.MetricsRepository {
	return &metricsRepository{db: db}
}

func (r *metricsRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserMetrics, error) {
	var metrics models.UserMetrics
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&metrics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user metrics: %w", err)
	}
	return &metrics, nil
}

func (r *metricsRepository) Save(ctx context.Context, metrics *models.UserMetrics) error {
	if err := r.db.WithContext(ctx).Save(metrics).Error; err != nil {
		return fmt.Errorf("failed to save user metrics: %w", err)
	}
	return nil
}
