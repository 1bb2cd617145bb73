package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	groups := api.Group("/groups", handler.AuthRequired)
	groups.Post("", handler.CreateGroup)
	groups.Get("", handler.ListMyGroups)
	groups.Post("/join", handler.JoinGroup)
	groups.Get("/:id", handler.GetGroup)
	groups.Get("/:id/members", handler.ListGroupMembers)
	groups.Delete("/:id/membership", handler.LeaveGroup)
	groups.Post("/:id/challenges", handler.CreateChallenge)
	groups.Get("/:id/challenges", handler.ListGroupChallenges)

	challenges := api.Group("/challenges", handler.AuthRequired)
	challenges.Get("/:id", handler.GetChallenge)
	challenges.Patch("/:id", handler.UpdateChallenge)
	challenges.Delete("/:id", handler.DeleteChallenge)
	challenges.Post("/:id/posts", handler.CreatePost)
	challenges.Get("/:id/posts", handler.ListChallengePosts)
	challenges.Get("/:id/calendar", handler.GetChallengeCalendar)
	challenges.Get("/:id/stats", handler.GetChallengeStats)
	challenges.Get("/:id/daily-totals", handler.GetChallengeDailyTotals)
	challenges.Get("/:id/streak", handler.GetChallengeStreak)

	posts := api.Group("/posts", handler.AuthRequired)
	posts.Get("/:id", handler.GetPost)
	posts.Patch("/:id", handler.UpdatePost)
	posts.Delete("/:id", handler.DeletePost)
	posts.Post("/:id/like", handler.TogglePostLike)
	posts.Post("/:id/comments", handler.CreateComment)
	posts.Get("/:id/comments", handler.ListPostComments)

	comments := api.Group("/comments", handler.AuthRequired)
	comments.Patch("/:id", handler.UpdateComment)
	comments.Delete("/:id", handler.DeleteComment)
}
