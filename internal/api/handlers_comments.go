package api

import (
	"github.com/gofiber/fiber/v2"
)

type commentInput struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID *uint  `json:"parent_id"`
}

type commentEditInput struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

func (handler *Handler) CreateComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	post, err := handler.fetchPostForMember(c, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	input := commentInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	comment, err := handler.commentService.CreateComment(user.ID, post.ID, input.ParentID, input.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (handler *Handler) ListPostComments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	post, err := handler.fetchPostForMember(c, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := handler.commentService.ListPostComments(post.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments})
}

func (handler *Handler) UpdateComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	commentID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	input := commentEditInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	comment, err := handler.commentService.UpdateComment(user.ID, commentID, input.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

func (handler *Handler) DeleteComment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	commentID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid comment id")
	}

	if err := handler.commentService.DeleteComment(user.ID, commentID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
