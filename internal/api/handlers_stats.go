package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/haruchallenge/haru/internal/kst"
)

func (handler *Handler) GetChallengeCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	month := strings.TrimSpace(c.Query("month"))
	if month == "" {
		month = time.Now().In(kst.Zone).Format("2006-01")
	}

	days, err := handler.statsService.ChallengeCalendar(user.ID, challengeID, month)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"month": month, "days": days})
}

func (handler *Handler) GetChallengeStats(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	stats, err := handler.statsService.ChallengeStats(user.ID, challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	// decorate nicknames
	userIDs := make([]uint, 0, len(stats))
	for _, entry := range stats {
		userIDs = append(userIDs, entry.UserID)
	}
	users, err := handler.repositories.Users.ListByIDs(userIDs)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	nicknames := make(map[uint]string, len(users))
	for _, entry := range users {
		nicknames[entry.ID] = entry.Nickname
	}
	for index := range stats {
		stats[index].Nickname = nicknames[stats[index].UserID]
	}

	return c.JSON(fiber.Map{"stats": stats})
}

func (handler *Handler) GetChallengeDailyTotals(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	totals, err := handler.statsService.ChallengeDailyTotals(user.ID, challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"daily_totals": totals})
}

func (handler *Handler) GetChallengeStreak(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	streak, err := handler.statsService.UserStreak(user.ID, challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"streak": streak})
}
