package db

import (
	"github.com/haruchallenge/haru/internal/models"
	"gorm.io/gorm"
)

type ChallengeRepository struct {
	database *gorm.DB
}

func NewChallengeRepository(database *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{database: database}
}

func (repo *ChallengeRepository) Create(challenge *models.Challenge) error {
	return repo.database.Create(challenge).Error
}

func (repo *ChallengeRepository) FindByID(challengeID uint) (models.Challenge, bool, error) {
	var challenge models.Challenge
	result := repo.database.Limit(1).Find(&challenge, challengeID)
	if result.Error != nil {
		return models.Challenge{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Challenge{}, false, nil
	}
	return challenge, true, nil
}

func (repo *ChallengeRepository) ListByGroup(groupID uint) ([]models.Challenge, error) {
	challenges := make([]models.Challenge, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (repo *ChallengeRepository) Save(challenge *models.Challenge) error {
	return repo.database.Save(challenge).Error
}

// DeleteWithRelated removes the challenge together with its posts, comments,
// likes and derived progress rows in one transaction.
func (repo *ChallengeRepository) DeleteWithRelated(challengeID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		postIDs := make([]uint, 0)
		if err := tx.Model(&models.Post{}).
			Where("challenge_id = ?", challengeID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("challenge_id = ?", challengeID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("challenge_id = ?", challengeID).Delete(&models.Progress{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Challenge{}, challengeID).Error
	})
}
