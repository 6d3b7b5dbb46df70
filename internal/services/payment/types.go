package payment

import (
	"context"

	"tutorlink/internal/models"
)

// CryptoChargeRequest asks the provider for a deposit address for one
// service order.
type CryptoChargeRequest struct {
	PayerID     uint    `json:"payer_id"`
	RecipientID uint    `json:"recipient_id"`
	ServiceType string  `json:"service_type"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
	// PayoutAddress is the recipient's own wallet address the provider
	// forwards the net amount to.
	PayoutAddress string `json:"payout_address"`
}

// CardChargeRequest is the fiat path: an immediate card charge in USD.
type CardChargeRequest struct {
	PayerID     uint    `json:"payer_id"`
	RecipientID uint    `json:"recipient_id"`
	ServiceType string  `json:"service_type"`
	Amount      float64 `json:"amount"`
	CardToken   string  `json:"card_token"`
}

// Callback is the webhook payload the provider posts when a deposit
// address sees activity.
type Callback struct {
	AddressIn     string  `json:"address_in"`
	TxID          string  `json:"txid_in"`
	ValueCoin     float64 `json:"value_coin"`
	Confirmations int     `json:"confirmations"`
	Pending       int     `json:"pending"`
}

// AddressProvider provisions deposit addresses with the upstream payment
// provider.
type AddressProvider interface {
	CreateAddress(ctx context.Context, currency, payoutAddress, callbackURL string, commissionPct float64) (string, error)
}

// CardCharger executes fiat card charges.
type CardCharger interface {
	Charge(ctx context.Context, amountUSD float64, token, description string) (string, error)
}

// Repository is the payment persistence boundary.
type Repository interface {
	Create(ctx context.Context, p *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	GetByAddressIn(ctx context.Context, addressIn string) (*models.Payment, error)
	Update(ctx context.Context, p *models.Payment) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Payment, error)
}

// Service handles payment intake and webhook-driven settlement.
type Service interface {
	CreateCryptoCharge(ctx context.Context, req CryptoChargeRequest) (*models.Payment, error)
	ChargeCard(ctx context.Context, req CardChargeRequest) (*models.Payment, error)
	HandleCallback(ctx context.Context, cb Callback) (*models.Payment, error)
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	ListPayments(ctx context.Context, userID uint, limit, offset int) ([]models.Payment, error)
}
