package db

import (
	"github.com/haruchallenge/haru/internal/models"
	"gorm.io/gorm"
)

type GroupRepository struct {
	database *gorm.DB
}

func NewGroupRepository(database *gorm.DB) *GroupRepository {
	return &GroupRepository{database: database}
}

// CreateWithOwner inserts the group and its owner membership in one transaction.
func (repo *GroupRepository) CreateWithOwner(group *models.Group) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		membership := models.GroupMembership{
			GroupID: group.ID,
			UserID:  group.CreatedBy,
			Role:    models.RoleOwner,
		}
		return tx.Create(&membership).Error
	})
}

func (repo *GroupRepository) FindByID(groupID uint) (models.Group, error) {
	var group models.Group
	if err := repo.database.First(&group, groupID).Error; err != nil {
		return models.Group{}, err
	}
	return group, nil
}

func (repo *GroupRepository) FindByInviteCode(code string) (models.Group, bool, error) {
	var group models.Group
	result := repo.database.Where("invite_code = ?", code).Limit(1).Find(&group)
	if result.Error != nil {
		return models.Group{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Group{}, false, nil
	}
	return group, true, nil
}

func (repo *GroupRepository) ListByUser(userID uint) ([]models.Group, error) {
	groups := make([]models.Group, 0)
	if err := repo.database.
		Joins("JOIN group_memberships ON group_memberships.group_id = groups.id").
		Where("group_memberships.user_id = ?", userID).
		Order("groups.id ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (repo *GroupRepository) FindMembership(groupID uint, userID uint) (models.GroupMembership, bool, error) {
	var membership models.GroupMembership
	result := repo.database.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Limit(1).
		Find(&membership)
	if result.Error != nil {
		return models.GroupMembership{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.GroupMembership{}, false, nil
	}
	return membership, true, nil
}

func (repo *GroupRepository) ListMemberships(groupID uint) ([]models.GroupMembership, error) {
	memberships := make([]models.GroupMembership, 0)
	if err := repo.database.
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (repo *GroupRepository) CountMembers(groupID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.GroupMembership{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *GroupRepository) AddMember(membership *models.GroupMembership) error {
	return repo.database.Create(membership).Error
}

func (repo *GroupRepository) RemoveMember(groupID uint, userID uint) error {
	return repo.database.
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMembership{}).Error
}
