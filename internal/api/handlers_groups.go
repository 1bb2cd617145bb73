package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/haruchallenge/haru/internal/models"
)

type groupInput struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description" validate:"max=500"`
}

type joinGroupInput struct {
	InviteCode string `json:"invite_code" validate:"required,len=8"`
}

type memberView struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
	Role     string `json:"role"`
}

func (handler *Handler) CreateGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := groupInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	group, err := handler.groupService.CreateGroup(user.ID, input.Name, input.Description)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (handler *Handler) ListMyGroups(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	groups, err := handler.groupService.ListUserGroups(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

func (handler *Handler) JoinGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := joinGroupInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	group, err := handler.groupService.JoinByInviteCode(user.ID, input.InviteCode)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(group)
}

func (handler *Handler) GetGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	groupID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid group id")
	}

	group, err := handler.groupService.FetchGroupForMember(user.ID, groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(group)
}

func (handler *Handler) ListGroupMembers(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	groupID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid group id")
	}

	memberships, err := handler.groupService.ListMembers(user.ID, groupID)
	if err != nil {
		return respondServiceError(c, err)
	}

	members, err := handler.buildMemberViews(memberships)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"members": members})
}

func (handler *Handler) LeaveGroup(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	groupID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid group id")
	}

	if err := handler.groupService.LeaveGroup(user.ID, groupID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) buildMemberViews(memberships []models.GroupMembership) ([]memberView, error) {
	userIDs := make([]uint, 0, len(memberships))
	for _, membership := range memberships {
		userIDs = append(userIDs, membership.UserID)
	}

	users, err := handler.repositories.Users.ListByIDs(userIDs)
	if err != nil {
		return nil, err
	}
	nicknames := make(map[uint]string, len(users))
	for _, user := range users {
		nicknames[user.ID] = user.Nickname
	}

	members := make([]memberView, 0, len(memberships))
	for _, membership := range memberships {
		members = append(members, memberView{
			UserID:   membership.UserID,
			Nickname: nicknames[membership.UserID],
			Role:     membership.Role,
		})
	}
	return members, nil
}
