package handlers

import (
	"errors"
	"strconv"

	"tutorlink/internal/services/referral"
	"tutorlink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReferralHandler struct {
	referralService referral.Service
}

func NewReferralHandler(referralService referral.Service) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// GenerateCode mints a new invite code for the authenticated user.
func (h *ReferralHandler) GenerateCode(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	code, err := h.referralService.GenerateCode(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to generate referral code")
	}
	return utils.Created(c, fiber.Map{"code": code.Code})
}

// Track records a referral for a signed-up user.
func (h *ReferralHandler) Track(c *fiber.Ctx) error {
	var input struct {
		Code           string `json:"code"`
		ReferredUserID uint   `json:"referred_user_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Code == "" || input.ReferredUserID == 0 {
		return utils.BadRequest(c, "code and referred_user_id are required")
	}

	ref, err := h.referralService.TrackReferral(c.Context(), input.Code, input.ReferredUserID)
	if err != nil {
		switch {
		case errors.Is(err, referral.ErrInvalidCode):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, referral.ErrSelfReferral):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, referral.ErrAlreadyReferred):
			return utils.Conflict(c, err.Error())
		default:
			return utils.InternalError(c, "failed to track referral")
		}
	}
	return utils.Created(c, fiber.Map{"referral": ref})
}

// Complete transitions a referral to completed and pays out bonuses.
func (h *ReferralHandler) Complete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid referral id")
	}

	result, err := h.referralService.CompleteReferral(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, referral.ErrNotFound):
			return utils.NotFound(c, err.Error())
		case errors.Is(err, referral.ErrAlreadyCompleted):
			return utils.Conflict(c, err.Error())
		default:
			return utils.InternalError(c, "failed to complete referral")
		}
	}
	return utils.Success(c, result)
}

// List returns the authenticated user's referrals.
func (h *ReferralHandler) List(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	refs, err := h.referralService.GetReferrals(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list referrals")
	}
	return utils.Success(c, fiber.Map{"referrals": refs})
}

// Award writes a standalone bonus, e.g. a tier bonus. Admin only.
func (h *ReferralHandler) Award(c *fiber.Ctx) error {
	var input struct {
		UserID uint    `json:"user_id"`
		Amount float64 `json:"amount"`
		Type   string  `json:"type"`
		Reason string  `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	bonus, err := h.referralService.AwardBonus(c.Context(), referral.Award{
		UserID: input.UserID,
		Amount: input.Amount,
		Type:   input.Type,
		Reason: input.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, referral.ErrInvalidBonusAmount),
			errors.Is(err, referral.ErrInvalidBonusType):
			return utils.BadRequest(c, err.Error())
		default:
			return utils.InternalError(c, "failed to award bonus")
		}
	}
	return utils.Created(c, fiber.Map{"bonus": bonus})
}

// Bonuses returns the authenticated user's bonus ledger.
func (h *ReferralHandler) Bonuses(c *fiber.Ctx) error {
	claims, err := utils.ClaimsFromContext(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	bonuses, err := h.referralService.GetBonusHistory(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list bonuses")
	}
	return utils.Success(c, fiber.Map{"bonuses": bonuses})
}
