package handlers

import (
	"errors"
	"strings"

	"tutorlink/internal/services/exchange"
	"tutorlink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RatesHandler struct {
	rates exchange.Service
}

func NewRatesHandler(rates exchange.Service) *RatesHandler {
	return &RatesHandler{rates: rates}
}

// Get returns the USD rate for a currency. ?fresh=true bypasses the cache.
func (h *RatesHandler) Get(c *fiber.Ctx) error {
	currency := strings.ToUpper(c.Params("currency"))
	useCache := !c.QueryBool("fresh", false)

	rate, err := h.rates.GetRate(c.Context(), currency, useCache)
	if err != nil {
		switch {
		case errors.Is(err, exchange.ErrUnsupportedCurrency):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, exchange.ErrNotConfigured):
			return utils.InternalError(c, err.Error())
		default:
			return utils.InternalError(c, "failed to fetch rate")
		}
	}
	return utils.Success(c, rate)
}

// Convert turns a crypto amount into USD at the current rate.
func (h *RatesHandler) Convert(c *fiber.Ctx) error {
	var input struct {
		Currency string  `json:"currency"`
		Amount   float64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	rate, err := h.rates.GetRate(c.Context(), strings.ToUpper(input.Currency), true)
	if err != nil {
		if errors.Is(err, exchange.ErrUnsupportedCurrency) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to fetch rate")
	}

	usd, err := h.rates.Convert(input.Amount, rate.RateToUSD)
	if err != nil {
		return utils.BadRequest(c, err.Error())
	}

	return utils.Success(c, fiber.Map{
		"currency":    rate.Currency,
		"amount":      input.Amount,
		"rate_to_usd": rate.RateToUSD,
		"usd_value":   usd,
	})
}
