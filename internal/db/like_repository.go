package db

import (
	"github.com/haruchallenge/haru/internal/models"
	"gorm.io/gorm"
)

type LikeRepository struct {
	database *gorm.DB
}

func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{database: database}
}

func (repo *LikeRepository) Find(postID uint, userID uint) (models.PostLike, bool, error) {
	var like models.PostLike
	result := repo.database.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Limit(1).
		Find(&like)
	if result.Error != nil {
		return models.PostLike{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PostLike{}, false, nil
	}
	return like, true, nil
}

func (repo *LikeRepository) Create(like *models.PostLike) error {
	return repo.database.Create(like).Error
}

func (repo *LikeRepository) Delete(postID uint, userID uint) error {
	return repo.database.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error
}

func (repo *LikeRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.PostLike{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *LikeRepository) ExistsByPost(postID uint, userID uint) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
