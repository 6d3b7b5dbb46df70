package models

import "time"

// UserMetrics aggregates a tutor's service-performance counters. Counters
// are mutated additively when an order completes or a rating arrives; the
// reputation score is always recomputed from the current counters and is
// never stored here.
type UserMetrics struct {
	ID                 uint `gorm:"primarykey"`
	UserID             uint `gorm:"uniqueIndex;not null"`
	ServicesCompleted  int  `gorm:"default:0"`
	OnTimeDeliveries   int  `gorm:"default:0"`
	SuccessfulServices int  `gorm:"default:0"`
	RatingSum          float64
	RatingCount        int
	ResponseMinutesSum float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AverageRating returns the mean rating on a 0-5 scale, 0 with no ratings.
func (m *UserMetrics) AverageRating() float64 {
	if m.RatingCount == 0 {
		return 0
	}
	return m.RatingSum / float64(m.RatingCount)
}

// SuccessRate returns the percentage of completed services marked successful.
func (m *UserMetrics) SuccessRate() float64 {
	if m.ServicesCompleted == 0 {
		return 0
	}
	return float64(m.SuccessfulServices) / float64(m.ServicesCompleted) * 100
}

// OnTimeRate returns the percentage of completed services delivered on time.
func (m *UserMetrics) OnTimeRate() float64 {
	if m.ServicesCompleted == 0 {
		return 0
	}
	return float64(m.OnTimeDeliveries) / float64(m.ServicesCompleted) * 100
}

// AverageResponseMinutes returns the mean first-response time in minutes.
func (m *UserMetrics) AverageResponseMinutes() float64 {
	if m.ServicesCompleted == 0 {
		return 0
	}
	return m.ResponseMinutesSum / float64(m.ServicesCompleted)
}
