package repositories

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrDuplicateRecord = errors.New("duplicate record")
)
