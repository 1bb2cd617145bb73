package db

import (
	"github.com/haruchallenge/haru/internal/models"
	"gorm.io/gorm"
)

type CommentRepository struct {
	database *gorm.DB
}

func NewCommentRepository(database *gorm.DB) *CommentRepository {
	return &CommentRepository{database: database}
}

func (repo *CommentRepository) Create(comment *models.Comment) error {
	return repo.database.Create(comment).Error
}

func (repo *CommentRepository) Save(comment *models.Comment) error {
	return repo.database.Save(comment).Error
}

func (repo *CommentRepository) FindByID(commentID uint) (models.Comment, bool, error) {
	var comment models.Comment
	result := repo.database.Limit(1).Find(&comment, commentID)
	if result.Error != nil {
		return models.Comment{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Comment{}, false, nil
	}
	return comment, true, nil
}

func (repo *CommentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := repo.database.
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Order("id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (repo *CommentRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Comment{}).
		Where("post_id = ? AND is_deleted = ?", postID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *CommentRepository) MarkDeleted(commentID uint) error {
	return repo.database.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_deleted", true).Error
}
