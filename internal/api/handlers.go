package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/haruchallenge/haru/internal/db"
	"github.com/haruchallenge/haru/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	validate     *validator.Validate

	repositories     *db.Repositories
	authService      *services.AuthService
	groupService     *services.GroupService
	challengeService *services.ChallengeService
	postService      *services.PostService
	commentService   *services.CommentService
	statsService     *services.StatsService
	loginLimiter     *attemptLimiter
}

func NewHandler(database *gorm.DB, secret string, cookieSecure bool) *Handler {
	repositories := db.NewRepositories(database)
	recorder := services.NewProgressRecorder(repositories.Progresses, repositories.Posts)
	groupService := services.NewGroupService(repositories.Groups)
	challengeService := services.NewChallengeService(repositories.Challenges, groupService)

	return &Handler{
		db:               database,
		secretKey:        []byte(secret),
		cookieSecure:     cookieSecure,
		validate:         validator.New(),
		repositories:     repositories,
		authService:      services.NewAuthService(repositories.Users),
		groupService:     groupService,
		challengeService: challengeService,
		postService:      services.NewPostService(repositories.Posts, repositories.Challenges, repositories.Groups, recorder),
		commentService:   services.NewCommentService(repositories.Comments, repositories.Likes),
		statsService:     services.NewStatsService(repositories.Progresses, challengeService),
		loginLimiter:     newAttemptLimiter(),
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
