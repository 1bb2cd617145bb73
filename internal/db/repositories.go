package db

import "gorm.io/gorm"

type Repositories struct {
	Users      *UserRepository
	Groups     *GroupRepository
	Challenges *ChallengeRepository
	Posts      *PostRepository
	Progresses *ProgressRepository
	Comments   *CommentRepository
	Likes      *LikeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:      NewUserRepository(database),
		Groups:     NewGroupRepository(database),
		Challenges: NewChallengeRepository(database),
		Posts:      NewPostRepository(database),
		Progresses: NewProgressRepository(database),
		Comments:   NewCommentRepository(database),
		Likes:      NewLikeRepository(database),
	}
}
