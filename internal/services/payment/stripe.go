package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

// StripeCharger executes USD card charges through Stripe.
type StripeCharger struct{}

func NewStripeCharger(apiKey string) *StripeCharger {
	stripe.Key = apiKey
	return &StripeCharger{}
}

func (s *StripeCharger) Charge(ctx context.Context, amountUSD float64, token, description string) (string, error) {
	if stripe.Key == "" {
		return "", ErrNotConfigured
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(int64(math.Round(amountUSD * 100))),
		Currency:    stripe.String(string(stripe.CurrencyUSD)),
		Description: stripe.String(description),
	}
	params.Context = ctx
	if err := params.SetSource(token); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	ch, err := charge.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return ch.ID, nil
}
