package referral

import "errors"

var (
	ErrInvalidCode        = errors.New("referral code is invalid or inactive")
	ErrSelfReferral       = errors.New("users cannot refer themselves")
	ErrAlreadyReferred    = errors.New("user has already been referred")
	ErrNotFound           = errors.New("referral not found")
	ErrAlreadyCompleted   = errors.New("referral has already been completed")
	ErrInvalidBonusAmount = errors.New("bonus amount must be greater than zero")
	ErrInvalidBonusType   = errors.New("unknown bonus type")
)
