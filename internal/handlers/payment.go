package handlers

import (
	"errors"
	"strconv"

	"tutorlink/internal/services/payment"
	"tutorlink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	paymentService payment.Service
}

func NewPaymentHandler(paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreateCryptoCharge provisions a crypto deposit address for an order.
func (h *PaymentHandler) CreateCryptoCharge(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req payment.CryptoChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	req.PayerID = claims.UserID

	p, err := h.paymentService.CreateCryptoCharge(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrInvalidRecipient):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, payment.ErrNotConfigured):
			return utils.InternalError(c, err.Error())
		default:
			return utils.InternalError(c, "failed to create charge")
		}
	}
	return utils.Created(c, fiber.Map{"payment": p})
}

// ChargeCard runs an immediate card charge for an order.
func (h *PaymentHandler) ChargeCard(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var req payment.CardChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	req.PayerID = claims.UserID

	p, err := h.paymentService.ChargeCard(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrInvalidAmount),
			errors.Is(err, payment.ErrInvalidRecipient):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, err.Error())
		}
	}
	return utils.Created(c, fiber.Map{"payment": p})
}

// Webhook handles provider callbacks for deposit addresses. It always
// answers 200 on known addresses so the provider stops retrying.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var cb payment.Callback
	if err := c.BodyParser(&cb); err != nil {
		return utils.BadRequest(c, "invalid callback format")
	}
	if cb.AddressIn == "" {
		return utils.BadRequest(c, "address_in is required")
	}

	p, err := h.paymentService.HandleCallback(c.Context(), cb)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return utils.NotFound(c, err.Error())
		}
		return utils.InternalError(c, "failed to process callback")
	}
	return utils.Success(c, fiber.Map{"status": p.Status})
}

// Get returns one payment by id.
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid payment id")
	}

	p, err := h.paymentService.GetPayment(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			return utils.NotFound(c, err.Error())
		}
		return utils.InternalError(c, "failed to get payment")
	}
	if p.PayerID != claims.UserID && p.RecipientID != claims.UserID {
		return utils.Forbidden(c, "not your payment")
	}
	return utils.Success(c, fiber.Map{"payment": p})
}

// List returns the authenticated user's payments.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	payments, err := h.paymentService.ListPayments(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "failed to list payments")
	}
	return utils.Success(c, fiber.Map{"payments": payments})
}
