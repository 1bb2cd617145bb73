package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/haruchallenge/haru/internal/kst"
	"github.com/haruchallenge/haru/internal/services"
)

type challengeInput struct {
	Title       string `json:"title" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=1000"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
}

func (input challengeInput) toServiceInput() (services.ChallengeInput, error) {
	startDate, err := kst.ParseDayString(input.StartDate)
	if err != nil {
		return services.ChallengeInput{}, err
	}
	endDate, err := kst.ParseDayString(input.EndDate)
	if err != nil {
		return services.ChallengeInput{}, err
	}
	return services.ChallengeInput{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   startDate,
		EndDate:     endDate,
	}, nil
}

func (handler *Handler) parseChallengeInput(c *fiber.Ctx) (services.ChallengeInput, bool) {
	input := challengeInput{}
	if err := c.BodyParser(&input); err != nil {
		return services.ChallengeInput{}, false
	}
	if err := handler.validate.Struct(input); err != nil {
		return services.ChallengeInput{}, false
	}
	parsed, err := input.toServiceInput()
	if err != nil {
		return services.ChallengeInput{}, false
	}
	return parsed, true
}

func (handler *Handler) CreateChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	groupID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid group id")
	}

	input, ok := handler.parseChallengeInput(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	challenge, err := handler.challengeService.CreateChallenge(user.ID, groupID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

func (handler *Handler) ListGroupChallenges(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	groupID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid group id")
	}

	challenges, err := handler.challengeService.ListGroupChallenges(user.ID, groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"challenges": challenges})
}

func (handler *Handler) GetChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	challenge, err := handler.challengeService.FetchChallengeForMember(user.ID, challengeID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(challenge)
}

func (handler *Handler) UpdateChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	input, ok := handler.parseChallengeInput(c)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	challenge, err := handler.challengeService.UpdateChallenge(user.ID, challengeID, input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(challenge)
}

func (handler *Handler) DeleteChallenge(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	if err := handler.challengeService.DeleteChallenge(user.ID, challengeID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
