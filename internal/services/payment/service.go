// Package payment handles payment intake for service orders: crypto deposit
// address provisioning with webhook-driven confirmation, and immediate fiat
// card charges. Every payment is stored with its commission split
// precomputed at creation time.
package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"tutorlink/internal/models"
	"tutorlink/internal/services/commission"
	"tutorlink/internal/services/exchange"
	"tutorlink/internal/services/reputation"

	"github.com/google/uuid"
)

type service struct {
	repo        Repository
	provider    AddressProvider
	charger     CardCharger
	rates       exchange.Service
	calc        *commission.Calculator
	reputation  reputation.Service
	callbackURL string
}

// NewService creates the payment service. The reputation service is
// optional; when present, confirmed payments bump the recipient's
// completion counters.
func NewService(
	repo Repository,
	provider AddressProvider,
	charger CardCharger,
	rates exchange.Service,
	reputationSvc reputation.Service,
	callbackURL string,
) Service {
	if repo == nil {
		panic("repo is required")
	}
	if provider == nil {
		panic("address provider is required")
	}
	return &service{
		repo:        repo,
		provider:    provider,
		charger:     charger,
		rates:       rates,
		calc:        commission.NewCalculator(),
		reputation:  reputationSvc,
		callbackURL: callbackURL,
	}
}

// CreateCryptoCharge provisions a deposit address for the order and stores
// a pending payment carrying the commission split.
func (s *service) CreateCryptoCharge(ctx context.Context, req CryptoChargeRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.PayerID == req.RecipientID {
		return nil, ErrInvalidRecipient
	}

	split, err := s.calc.SplitByServiceType(req.Amount, req.ServiceType)
	if err != nil {
		return nil, err
	}

	// The provider forwards the commission share on-chain, so it needs the
	// rate as a percentage.
	addressIn, err := s.provider.CreateAddress(ctx, req.Currency, req.PayoutAddress, s.callbackURL, split.Rate*100)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposit address: %w", err)
	}

	p := &models.Payment{
		PayerID:          req.PayerID,
		RecipientID:      req.RecipientID,
		ServiceType:      req.ServiceType,
		Method:           models.PaymentMethodCrypto,
		Currency:         req.Currency,
		Amount:           req.Amount,
		CommissionRate:   split.Rate,
		CommissionAmount: split.CommissionAmount,
		RecipientAmount:  split.RecipientAmount,
		Status:           models.PaymentStatusPending,
		Reference:        uuid.NewString(),
		AddressIn:        addressIn,
	}
	if usd, err := s.usdValue(ctx, req.Currency, req.Amount); err == nil {
		p.USDValue = usd
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

// ChargeCard runs the fiat path: charge the card now, record the payment as
// confirmed immediately.
func (s *service) ChargeCard(ctx context.Context, req CardChargeRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.PayerID == req.RecipientID {
		return nil, ErrInvalidRecipient
	}
	if s.charger == nil {
		return nil, ErrNotConfigured
	}

	split, err := s.calc.SplitByServiceType(req.Amount, req.ServiceType)
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	chargeID, err := s.charger.Charge(ctx, req.Amount, req.CardToken,
		fmt.Sprintf("tutorlink order %s", reference))
	if err != nil {
		return nil, fmt.Errorf("card charge failed: %w", err)
	}

	now := time.Now()
	p := &models.Payment{
		PayerID:          req.PayerID,
		RecipientID:      req.RecipientID,
		ServiceType:      req.ServiceType,
		Method:           models.PaymentMethodCard,
		Currency:         "USD",
		Amount:           req.Amount,
		CommissionRate:   split.Rate,
		CommissionAmount: split.CommissionAmount,
		RecipientAmount:  split.RecipientAmount,
		USDValue:         req.Amount,
		Status:           models.PaymentStatusConfirmed,
		Reference:        reference,
		TxID:             chargeID,
		ConfirmedAt:      &now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.recordCompletion(ctx, p)
	return p, nil
}

// HandleCallback processes the provider webhook for a deposit address. The
// payment moves to confirmed once the transaction has left the mempool and
// has at least one confirmation; repeated callbacks for a confirmed payment
// are ignored.
func (s *service) HandleCallback(ctx context.Context, cb Callback) (*models.Payment, error) {
	p, err := s.repo.GetByAddressIn(ctx, cb.AddressIn)
	if err != nil {
		return nil, fmt.Errorf("failed to look up payment: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}

	if p.Status == models.PaymentStatusConfirmed {
		return p, nil
	}

	p.TxID = cb.TxID
	p.Confirmations = cb.Confirmations

	if cb.Pending == 0 && cb.Confirmations >= 1 {
		now := time.Now()
		p.Status = models.PaymentStatusConfirmed
		p.ConfirmedAt = &now
		if usd, err := s.usdValue(ctx, p.Currency, cb.ValueCoin); err == nil {
			p.USDValue = usd
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	if p.Status == models.PaymentStatusConfirmed {
		s.recordCompletion(ctx, p)
	}
	return p, nil
}

func (s *service) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) ListPayments(ctx context.Context, userID uint, limit, offset int) ([]models.Payment, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	payments, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// usdValue converts a crypto amount to USD at the current cached rate.
func (s *service) usdValue(ctx context.Context, currency string, amount float64) (float64, error) {
	if currency == "USD" {
		return amount, nil
	}
	if s.rates == nil {
		return 0, exchange.ErrNotConfigured
	}
	rate, err := s.rates.GetRate(ctx, currency, true)
	if err != nil {
		return 0, err
	}
	return s.rates.Convert(amount, rate.RateToUSD)
}

func (s *service) recordCompletion(ctx context.Context, p *models.Payment) {
	if s.reputation == nil {
		return
	}
	// Delivery timing and first-response data come from the order flow;
	// the payment layer only knows the service finished and settled.
	if _, err := s.reputation.RecordCompletion(ctx, p.RecipientID, true, true, 0); err != nil {
		log.Printf("failed to record completion for user %d: %v", p.RecipientID, err)
	}
}
