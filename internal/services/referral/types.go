package referral

import "tutorlink/internal/models"

// Fixed bonus amounts in USD.
const (
	ReferrerBonus = 10.00
	WelcomeBonus  = 5.00
)

// milestoneBonuses maps exact completed-referral counts to one-time bonus
// amounts. The check is an exact match on the count after completion, not a
// threshold crossing.
var milestoneBonuses = map[int]float64{
	5:  25.00,
	10: 50.00,
	25: 100.00,
	50: 250.00,
}

var validBonusTypes = map[string]bool{
	models.BonusTypeReferral:  true,
	models.BonusTypeWelcome:   true,
	models.BonusTypeMilestone: true,
	models.BonusTypeTier:      true,
}

// Award describes a single bonus to be written to the ledger and credited
// to the user's wallet.
type Award struct {
	UserID            uint
	Amount            float64
	Type              string
	Reason            string
	RelatedReferralID *uint
}

// CompletionResult reports what a completed referral paid out.
type CompletionResult struct {
	Referral       *models.Referral          `json:"referral"`
	Awards         []models.BonusTransaction `json:"awards"`
	CompletedCount int                       `json:"completed_count"`
}
