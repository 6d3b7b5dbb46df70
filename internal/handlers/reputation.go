package handlers

import (
	"errors"
	"strconv"

	"tutorlink/internal/services/reputation"
	"tutorlink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReputationHandler struct {
	reputationService reputation.Service
}

func NewReputationHandler(reputationService reputation.Service) *ReputationHandler {
	return &ReputationHandler{reputationService: reputationService}
}

// Score returns a user's current reputation score.
func (h *ReputationHandler) Score(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}

	score, err := h.reputationService.GetScore(c.Context(), uint(userID))
	if err != nil {
		return utils.InternalError(c, "failed to compute score")
	}
	return utils.Success(c, fiber.Map{"user_id": userID, "score": score})
}

// Metrics returns a user's raw performance counters.
func (h *ReputationHandler) Metrics(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}

	m, err := h.reputationService.GetMetrics(c.Context(), uint(userID))
	if err != nil {
		return utils.InternalError(c, "failed to get metrics")
	}
	return utils.Success(c, fiber.Map{
		"user_id":                  m.UserID,
		"services_completed":       m.ServicesCompleted,
		"average_rating":           m.AverageRating(),
		"success_rate":             m.SuccessRate(),
		"on_time_delivery_rate":    m.OnTimeRate(),
		"average_response_minutes": m.AverageResponseMinutes(),
	})
}

// Rate records a rating for a tutor after a finished order.
func (h *ReputationHandler) Rate(c *fiber.Ctx) error {
	if _, err := utils.ClaimsFromContext(c); err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid user id")
	}

	var input struct {
		Rating float64 `json:"rating"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	score, err := h.reputationService.RecordRating(c.Context(), uint(userID), input.Rating)
	if err != nil {
		if errors.Is(err, reputation.ErrInvalidRating) {
			return utils.BadRequest(c, err.Error())
		}
		return utils.InternalError(c, "failed to record rating")
	}
	return utils.Success(c, fiber.Map{"user_id": userID, "score": score})
}
