// Package commission splits gross payment amounts into the platform
// commission and the recipient share, at either the flat default rate or a
// per-service-type rate.
package commission

import (
	"math"

	"tutorlink/internal/models"
)

// DefaultRate is the platform-wide commission fraction applied when no
// service-type override exists.
const DefaultRate = 0.03

// serviceTypeRates maps each service type to its commission tier.
var serviceTypeRates = map[string]float64{
	models.ServiceTypeHomeworkHelp:      0.15,
	models.ServiceTypeProgrammingHelp:   0.20,
	models.ServiceTypeAssignmentWriting: 0.15,
	models.ServiceTypeTestTaking:        0.25,
}

// Split is the result of dividing a gross amount at a commission rate.
// CommissionAmount and RecipientAmount are rounded independently to 8
// decimal places, so their sum may drift from TotalAmount by up to 1e-8.
type Split struct {
	TotalAmount      float64 `json:"total_amount"`
	CommissionAmount float64 `json:"commission_amount"`
	RecipientAmount  float64 `json:"recipient_amount"`
	Rate             float64 `json:"rate"`
}

type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Split divides total at the given rate. The rate must lie in [0,1] and the
// total must be positive.
func (c *Calculator) Split(total, rate float64) (Split, error) {
	if total <= 0 {
		return Split{}, ErrInvalidAmount
	}
	if rate < 0 || rate > 1 {
		return Split{}, ErrInvalidRate
	}
	return Split{
		TotalAmount:      total,
		CommissionAmount: round8(total * rate),
		RecipientAmount:  round8(total * (1 - rate)),
		Rate:             rate,
	}, nil
}

// SplitDefault divides total at the platform default rate.
func (c *Calculator) SplitDefault(total float64) (Split, error) {
	return c.Split(total, DefaultRate)
}

// SplitByServiceType divides total at the service type's commission tier.
// Unknown service types use the default rate rather than failing, so a new
// service type rolled out ahead of its tier still settles.
func (c *Calculator) SplitByServiceType(total float64, serviceType string) (Split, error) {
	return c.Split(total, RateFor(serviceType))
}

// RateFor returns the commission rate for a service type, or DefaultRate
// when the type has no override.
func RateFor(serviceType string) float64 {
	if rate, ok := serviceTypeRates[serviceType]; ok {
		return rate
	}
	return DefaultRate
}

// round8 rounds to 8 decimal places, half away from zero. This is the
// rounding granularity for all cryptocurrency amounts.
func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
