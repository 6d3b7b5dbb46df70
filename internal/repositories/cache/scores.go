package cache

import (
	"context"
	"fmt"
	"time"
)

// ScoreCache adapts the cache service to the reputation package's
// CacheOperator interface.
type ScoreCache struct {
	svc *CacheService
}

func NewScoreCache(svc *CacheService) *ScoreCache {
	return &ScoreCache{svc: svc}
}

func scoreKey(userID uint) string {
	return fmt.Sprintf("reputation:score:%d", userID)
}

func (c *ScoreCache) GetScore(ctx context.Context, userID uint) (int, bool, error) {
	var score int
	found, err := c.svc.Get(ctx, scoreKey(userID), &score)
	return score, found, err
}

func (c *ScoreCache) SetScore(ctx context.Context, userID uint, score int, ttl time.Duration) error {
	return c.svc.SetWithTTL(ctx, scoreKey(userID), score, ttl)
}

func (c *ScoreCache) InvalidateScore(ctx context.Context, userID uint) error {
	return c.svc.Delete(ctx, scoreKey(userID))
}
