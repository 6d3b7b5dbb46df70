package commission

import "errors"

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidRate   = errors.New("commission rate must be between 0 and 1")
)
