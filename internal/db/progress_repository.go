package db

import (
	"time"

	"github.com/haruchallenge/haru/internal/models"
	"gorm.io/gorm"
)

type ProgressRepository struct {
	database *gorm.DB
}

func NewProgressRepository(database *gorm.DB) *ProgressRepository {
	return &ProgressRepository{database: database}
}

// FindInRange looks up the progress row for (challenge, user) whose
// created_at falls within [start, end). created_at bucketing is the one
// authoritative lookup strategy; the date column is denormalized display data.
func (repo *ProgressRepository) FindInRange(challengeID uint, userID uint, start time.Time, end time.Time) (models.Progress, bool, error) {
	var record models.Progress
	result := repo.database.
		Where("challenge_id = ? AND user_id = ? AND created_at >= ? AND created_at < ?",
			challengeID, userID, start, end).
		Order("id ASC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.Progress{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Progress{}, false, nil
	}
	return record, true, nil
}

func (repo *ProgressRepository) Create(record *models.Progress) error {
	return repo.database.Create(record).Error
}

func (repo *ProgressRepository) Save(record *models.Progress) error {
	return repo.database.Save(record).Error
}

func (repo *ProgressRepository) DeleteByID(recordID uint) error {
	return repo.database.Delete(&models.Progress{}, recordID).Error
}

func (repo *ProgressRepository) ListByChallengeUserDates(challengeID uint, userID uint, fromDay string, toDay string) ([]models.Progress, error) {
	records := make([]models.Progress, 0)
	if err := repo.database.
		Where("challenge_id = ? AND user_id = ? AND date >= ? AND date <= ?",
			challengeID, userID, fromDay, toDay).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *ProgressRepository) ListByChallenge(challengeID uint) ([]models.Progress, error) {
	records := make([]models.Progress, 0)
	if err := repo.database.
		Where("challenge_id = ?", challengeID).
		Order("user_id ASC, date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *ProgressRepository) ListByChallengeUser(challengeID uint, userID uint) ([]models.Progress, error) {
	records := make([]models.Progress, 0)
	if err := repo.database.
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Order("date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
