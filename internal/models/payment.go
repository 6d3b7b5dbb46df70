package models

import "time"

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusConfirmed = "confirmed"
)

// Payment methods.
const (
	PaymentMethodCrypto = "crypto"
	PaymentMethodCard   = "card"
)

// Service types offered on the marketplace. Each carries its own
// commission tier; unknown types fall back to the default rate.
const (
	ServiceTypeHomeworkHelp      = "homework_help"
	ServiceTypeProgrammingHelp   = "programming_help"
	ServiceTypeAssignmentWriting = "assignment_writing"
	ServiceTypeTestTaking        = "test_taking"
)

// Payment records one incoming payment for a service order, together with
// the commission split computed at creation time. Crypto amounts carry
// 8-decimal precision, fiat amounts 2-decimal precision.
type Payment struct {
	ID               uint    `gorm:"primarykey"`
	PayerID          uint    `gorm:"index;not null"`
	RecipientID      uint    `gorm:"index;not null"`
	ServiceType      string  `gorm:"not null"`
	Method           string  `gorm:"not null"`
	Currency         string  `gorm:"not null"`
	Amount           float64 `gorm:"not null"`
	CommissionRate   float64 `gorm:"not null"`
	CommissionAmount float64 `gorm:"not null"`
	RecipientAmount  float64 `gorm:"not null"`
	USDValue         float64
	Status           string `gorm:"not null;default:'pending'"`
	Reference        string `gorm:"uniqueIndex;not null"`
	AddressIn        string `gorm:"index"` // deposit address from the payment provider
	TxID             string // on-chain transaction hash once seen
	Confirmations    int
	ConfirmedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
