package models

import "time"

// Wallet holds a user's fiat (USD) balance on the platform.
// Referral and milestone bonuses are credited here.
type Wallet struct {
	ID        uint    `gorm:"primarykey"`
	UserID    uint    `gorm:"uniqueIndex;not null"`
	Balance   float64 `gorm:"default:0"`
	Currency  string  `gorm:"default:'USD'"`
	Status    string  `gorm:"default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
