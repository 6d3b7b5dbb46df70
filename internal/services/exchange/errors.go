package exchange

import "errors"

var (
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrNotConfigured       = errors.New("exchange rate provider API key not configured")
	ErrUpstream            = errors.New("exchange rate provider request failed")
	ErrInvalidAmount       = errors.New("amount must not be negative")
	ErrInvalidRate         = errors.New("rate must be greater than zero")
)
