package models

import "time"

// Referral statuses. A referral is created pending and moves to completed
// exactly once, when the referred user finishes their qualifying order.
const (
	ReferralStatusPending   = "pending"
	ReferralStatusCompleted = "completed"
)

// Bonus transaction types.
const (
	BonusTypeReferral  = "referral_bonus"
	BonusTypeWelcome   = "welcome_bonus"
	BonusTypeMilestone = "milestone_bonus"
	BonusTypeTier      = "tier_bonus"
)

// ReferralCode is a shareable invite code owned by a user.
type ReferralCode struct {
	ID        uint   `gorm:"primarykey"`
	Code      string `gorm:"uniqueIndex;not null"`
	OwnerID   uint   `gorm:"index;not null"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
}

// Referral links a referrer to a referred user. A user may be referred at
// most once, enforced by the unique index on ReferredID.
type Referral struct {
	ID          uint   `gorm:"primarykey"`
	ReferrerID  uint   `gorm:"index;not null"`
	ReferredID  uint   `gorm:"uniqueIndex;not null"`
	Code        string `gorm:"not null"`
	Status      string `gorm:"not null;default:'pending'"`
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BonusTransaction is an append-only ledger entry. Rows are never updated
// or deleted after creation.
type BonusTransaction struct {
	ID                uint    `gorm:"primarykey"`
	UserID            uint    `gorm:"index;not null"`
	Amount            float64 `gorm:"not null"`
	Type              string  `gorm:"not null"`
	Reason            string
	RelatedReferralID *uint `gorm:"index"`
	CreatedAt         time.Time
}
