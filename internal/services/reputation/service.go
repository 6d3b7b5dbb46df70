package reputation

import (
	"context"
	"fmt"
	"log"
	"time"

	"tutorlink/internal/models"
)

const scoreCacheTTL = 5 * time.Minute

type service struct {
	repo  MetricsRepository
	cache CacheOperator
}

// NewService creates a reputation service. The cache is optional.
func NewService(repo MetricsRepository, cache CacheOperator) Service {
	if repo == nil {
		panic("metrics repository is required")
	}
	return &service{
		repo:  repo,
		cache: cache,
	}
}

func (s *service) GetScore(ctx context.Context, userID uint) (int, error) {
	if s.cache != nil {
		if score, ok, err := s.cache.GetScore(ctx, userID); err == nil && ok {
			return score, nil
		}
	}

	metrics, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get metrics: %w", err)
	}
	if metrics == nil {
		// No activity yet.
		return 0, nil
	}

	score := Score(*metrics)
	s.cacheScore(ctx, userID, score)
	return score, nil
}

func (s *service) GetMetrics(ctx context.Context, userID uint) (*models.UserMetrics, error) {
	metrics, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	if metrics == nil {
		return &models.UserMetrics{UserID: userID}, nil
	}
	return metrics, nil
}

// RecordCompletion bumps the completion counters for a finished order and
// returns the recomputed score.
func (s *service) RecordCompletion(ctx context.Context, userID uint, successful, onTime bool, responseMinutes float64) (int, error) {
	if responseMinutes < 0 {
		return 0, ErrInvalidResponseTime
	}

	metrics, err := s.loadOrInit(ctx, userID)
	if err != nil {
		return 0, err
	}

	metrics.ServicesCompleted++
	if successful {
		metrics.SuccessfulServices++
	}
	if onTime {
		metrics.OnTimeDeliveries++
	}
	metrics.ResponseMinutesSum += responseMinutes

	return s.saveAndScore(ctx, metrics)
}

// RecordRating folds a new rating into the running average and returns the
// recomputed score.
func (s *service) RecordRating(ctx context.Context, userID uint, rating float64) (int, error) {
	if rating < 0 || rating > 5 {
		return 0, ErrInvalidRating
	}

	metrics, err := s.loadOrInit(ctx, userID)
	if err != nil {
		return 0, err
	}

	metrics.RatingSum += rating
	metrics.RatingCount++

	return s.saveAndScore(ctx, metrics)
}

func (s *service) loadOrInit(ctx context.Context, userID uint) (*models.UserMetrics, error) {
	metrics, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	if metrics == nil {
		metrics = &models.UserMetrics{UserID: userID}
	}
	return metrics, nil
}

func (s *service) saveAndScore(ctx context.Context, metrics *models.UserMetrics) (int, error) {
	if err := s.repo.Save(ctx, metrics); err != nil {
		return 0, fmt.Errorf("failed to save metrics: %w", err)
	}

	score := Score(*metrics)
	s.cacheScore(ctx, metrics.UserID, score)
	return score, nil
}

func (s *service) cacheScore(ctx context.Context, userID uint, score int) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetScore(ctx, userID, score, scoreCacheTTL); err != nil {
		log.Printf("failed to cache reputation score for user %d: %v", userID, err)
	}
}
