package payment

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidRecipient = errors.New("payer and recipient must differ")
	ErrNotFound         = errors.New("payment not found")
	ErrNotConfigured    = errors.New("payment provider API key not configured")
	ErrUpstream         = errors.New("payment provider request failed")
)
