package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles on the marketplace.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Email               string  `gorm:"uniqueIndex;not null"`
	Password            string  `gorm:"not null"`
	Name                string  `gorm:"not null"`
	Role                string  `gorm:"default:'student'"`
	Status              string  `gorm:"default:'active'"`
	WalletID            *uint   `gorm:"unique;default:null"`
	Wallet              *Wallet `gorm:"foreignKey:WalletID"`
	PayoutAddress       string  // crypto address settlements are forwarded to
	LastLoginAt         time.Time
	FailedLoginAttempts int `gorm:"default:0"`
	TokenVersion        int `gorm:"default:1"`
}
