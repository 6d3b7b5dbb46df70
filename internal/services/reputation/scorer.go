// Package reputation derives a tutor's composite reputation score from
// their service-performance counters and keeps those counters up to date as
// orders complete and ratings arrive.
package reputation

import (
	"math"

	"tutorlink/internal/models"
)

// Component weights of the reputation formula.
const (
	pointsPerService  = 2
	ratingWeight      = 100
	successRateWeight = 3
	onTimeRateWeight  = 2
)

// Score computes the reputation score fresh from the current counters. The
// result is the rounded weighted sum of:
//   - 2 points per completed service
//   - 100 x average rating (0-5 scale)
//   - 3 x success rate percent
//   - 2 x on-time delivery rate percent
//   - a response-time bonus (fastest responders get 100)
//
// No component is capped. A user with zero activity scores 0.
func Score(m models.UserMetrics) int {
	sum := float64(m.ServicesCompleted) * pointsPerService
	sum += m.AverageRating() * ratingWeight
	sum += m.SuccessRate() * successRateWeight
	sum += m.OnTimeRate() * onTimeRateWeight
	sum += responseTimeBonus(m.AverageResponseMinutes())
	return int(math.Round(sum))
}

// responseTimeBonus rewards fast first responses in tiers. A non-positive
// average means no recorded responses and earns nothing.
func responseTimeBonus(avgMinutes float64) float64 {
	switch {
	case avgMinutes <= 0:
		return 0
	case avgMinutes <= 30:
		return 100
	case avgMinutes <= 60:
		return 75
	case avgMinutes <= 120:
		return 50
	case avgMinutes <= 240:
		return 25
	default:
		return 0
	}
}
