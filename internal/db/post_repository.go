package db

import (
	"time"

	"github.com/haruchallenge/haru/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	database *gorm.DB
}

func NewPostRepository(database *gorm.DB) *PostRepository {
	return &PostRepository{database: database}
}

func (repo *PostRepository) Create(post *models.Post) error {
	return repo.database.Create(post).Error
}

func (repo *PostRepository) Save(post *models.Post) error {
	return repo.database.Save(post).Error
}

func (repo *PostRepository) FindByPublicID(publicID string) (models.Post, bool, error) {
	var post models.Post
	result := repo.database.Where("public_id = ?", publicID).Limit(1).Find(&post)
	if result.Error != nil {
		return models.Post{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Post{}, false, nil
	}
	return post, true, nil
}

func (repo *PostRepository) ListByChallenge(challengeID uint, limit int, offset int) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	query := repo.database.
		Where("challenge_id = ? AND is_deleted = ?", challengeID, false).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountActiveInRange counts non-deleted posts for (user, challenge) whose
// created_at falls within [start, end).
func (repo *PostRepository) CountActiveInRange(challengeID uint, userID uint, start time.Time, end time.Time) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Post{}).
		Where("challenge_id = ? AND user_id = ? AND is_deleted = ? AND created_at >= ? AND created_at < ?",
			challengeID, userID, false, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PostRepository) MarkDeleted(postID uint) error {
	return repo.database.Model(&models.Post{}).
		Where("id = ?", postID).
		Update("is_deleted", true).Error
}
