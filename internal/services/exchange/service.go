// Package exchange provides cached crypto-to-USD exchange rates and amount
// conversion. Rates come from the payment provider's pricing endpoint and
// stay fresh for five minutes; the cache is owned by the service instance
// so tests can control both time and state.
package exchange

import (
	"context"
	"math"
	"sync"
	"time"
)

var supportedCurrencies = map[string]bool{
	CurrencyBTC:  true,
	CurrencyETH:  true,
	CurrencyDOGE: true,
	CurrencySOL:  true,
}

type service struct {
	fetcher Fetcher
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]Rate
}

// NewService creates a rate service backed by the given fetcher. A nil
// clock defaults to time.Now.
func NewService(fetcher Fetcher, clock func() time.Time) Service {
	if fetcher == nil {
		panic("fetcher is required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{
		fetcher: fetcher,
		now:     clock,
		entries: make(map[string]Rate),
	}
}

// GetRate returns the USD rate for a supported currency. A cached entry is
// served while it is less than RateTTL old; useCache=false forces a fresh
// fetch and overwrites the entry on success. A failed fetch leaves the
// cache untouched.
func (s *service) GetRate(ctx context.Context, currency string, useCache bool) (Rate, error) {
	if !supportedCurrencies[currency] {
		return Rate{}, ErrUnsupportedCurrency
	}

	now := s.now()

	if useCache {
		s.mu.Lock()
		entry, ok := s.entries[currency]
		if ok && now.Sub(entry.FetchedAt) >= RateTTL {
			delete(s.entries, currency)
			ok = false
		}
		s.mu.Unlock()
		if ok {
			entry.Cached = true
			return entry, nil
		}
	}

	value, err := s.fetcher.FetchRate(ctx, currency)
	if err != nil {
		return Rate{}, err
	}

	entry := Rate{
		Currency:  currency,
		RateToUSD: value,
		FetchedAt: now,
	}

	s.mu.Lock()
	s.entries[currency] = entry
	s.mu.Unlock()

	return entry, nil
}

// Convert turns a crypto amount into its USD value at the given rate,
// rounded to cents.
func (s *service) Convert(amount, rateToUSD float64) (float64, error) {
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	if rateToUSD <= 0 {
		return 0, ErrInvalidRate
	}
	return round2(amount * rateToUSD), nil
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
