package reputation

import "errors"

var (
	ErrInvalidRating       = errors.New("rating must be between 0 and 5")
	ErrInvalidResponseTime = errors.New("response time must not be negative")
)
