package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/haruchallenge/haru/internal/models"
	"github.com/haruchallenge/haru/internal/services"
)

type postInput struct {
	Title     string   `json:"title" validate:"required,min=1,max=100"`
	Content   string   `json:"content" validate:"max=2000"`
	ImageURLs []string `json:"image_urls" validate:"omitempty,max=10,dive,url"`
}

func (handler *Handler) CreatePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	input := postInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	post, bookkeeping, err := handler.postService.CreatePost(user.ID, challengeID, services.PostInput{
		Title:     input.Title,
		Content:   input.Content,
		ImageURLs: input.ImageURLs,
	})
	if err != nil {
		if err == services.ErrDuplicateForDay {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":        err.Error(),
				"challenge_id": challengeID,
				"rule":         "one post per challenge per day",
			})
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post":              post,
		"progress_recorded": bookkeeping.OK(),
	})
}

func (handler *Handler) ListChallengePosts(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	challengeID, err := parseIDParam(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid challenge id")
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	posts, err := handler.postService.ListChallengePosts(user.ID, challengeID, limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := handler.commentService.DecoratePosts(posts, user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (handler *Handler) GetPost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	post, err := handler.fetchPostForMember(c, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	decorated := []models.Post{post}
	if err := handler.commentService.DecoratePosts(decorated, user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(decorated[0])
}

func (handler *Handler) UpdatePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := postInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	post, err := handler.postService.UpdatePost(user.ID, postIDParam(c), services.PostInput{
		Title:     input.Title,
		Content:   input.Content,
		ImageURLs: input.ImageURLs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

func (handler *Handler) DeletePost(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	bookkeeping, err := handler.postService.DeletePost(user.ID, postIDParam(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"ok":                 true,
		"progress_retracted": bookkeeping.OK(),
	})
}

func (handler *Handler) TogglePostLike(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	post, err := handler.fetchPostForMember(c, user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	liked, count, err := handler.commentService.ToggleLike(user.ID, post.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"liked": liked, "like_count": count})
}

// fetchPostForMember resolves the :id public id and enforces the group
// membership gate shared by the post read/like/comment routes.
func (handler *Handler) fetchPostForMember(c *fiber.Ctx, userID uint) (models.Post, error) {
	post, err := handler.postService.FetchPost(postIDParam(c))
	if err != nil {
		return models.Post{}, err
	}
	if err := handler.groupService.RequireMember(post.GroupID, userID); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func postIDParam(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Params("id"))
}
