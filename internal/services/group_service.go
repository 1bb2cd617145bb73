package services

import (
	"errors"

	"github.com/haruchallenge/haru/internal/models"
	"github.com/haruchallenge/haru/internal/security"
)

var (
	ErrGroupLoadFailed      = errors.New("load group failed")
	ErrGroupCreateFailed    = errors.New("create group failed")
	ErrGroupNotFound        = errors.New("group not found")
	ErrInviteCodeNotFound   = errors.New("invite code not found")
	ErrAlreadyMember        = errors.New("already a member of this group")
	ErrMembershipLoadFailed = errors.New("load membership failed")
	ErrOwnerCannotLeave     = errors.New("owner cannot leave a group with members")
	ErrLeaveGroupFailed     = errors.New("leave group failed")
)

const (
	inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	inviteCodeLength   = 8
)

type GroupStore interface {
	CreateWithOwner(group *models.Group) error
	FindByID(groupID uint) (models.Group, error)
	FindByInviteCode(code string) (models.Group, bool, error)
	ListByUser(userID uint) ([]models.Group, error)
	FindMembership(groupID uint, userID uint) (models.GroupMembership, bool, error)
	ListMemberships(groupID uint) ([]models.GroupMembership, error)
	CountMembers(groupID uint) (int64, error)
	AddMember(membership *models.GroupMembership) error
	RemoveMember(groupID uint, userID uint) error
}

type GroupService struct {
	groups GroupStore
}

func NewGroupService(groups GroupStore) *GroupService {
	return &GroupService{groups: groups}
}

// CreateGroup inserts the group with a fresh invite code and makes the
// creator its owner. Retries a few times on an invite-code collision.
func (service *GroupService) CreateGroup(userID uint, name string, description string) (models.Group, error) {
	const createAttempts = 5

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		code, err := security.RandomString(inviteCodeLength, inviteCodeAlphabet)
		if err != nil {
			return models.Group{}, ErrGroupCreateFailed
		}

		group := models.Group{
			Name:        name,
			Description: description,
			InviteCode:  code,
			CreatedBy:   userID,
		}
		if err := service.groups.CreateWithOwner(&group); err != nil {
			lastErr = err
			continue
		}
		return group, nil
	}

	_ = lastErr
	return models.Group{}, ErrGroupCreateFailed
}

func (service *GroupService) JoinByInviteCode(userID uint, code string) (models.Group, error) {
	group, found, err := service.groups.FindByInviteCode(code)
	if err != nil {
		return models.Group{}, ErrGroupLoadFailed
	}
	if !found {
		return models.Group{}, ErrInviteCodeNotFound
	}

	_, isMember, err := service.groups.FindMembership(group.ID, userID)
	if err != nil {
		return models.Group{}, ErrMembershipLoadFailed
	}
	if isMember {
		return models.Group{}, ErrAlreadyMember
	}

	membership := models.GroupMembership{
		GroupID: group.ID,
		UserID:  userID,
		Role:    models.RoleMember,
	}
	if err := service.groups.AddMember(&membership); err != nil {
		return models.Group{}, ErrGroupLoadFailed
	}
	return group, nil
}

func (service *GroupService) FetchGroupForMember(userID uint, groupID uint) (models.Group, error) {
	if err := service.RequireMember(groupID, userID); err != nil {
		return models.Group{}, err
	}
	group, err := service.groups.FindByID(groupID)
	if err != nil {
		return models.Group{}, ErrGroupNotFound
	}
	return group, nil
}

func (service *GroupService) ListUserGroups(userID uint) ([]models.Group, error) {
	groups, err := service.groups.ListByUser(userID)
	if err != nil {
		return nil, ErrGroupLoadFailed
	}
	return groups, nil
}

func (service *GroupService) ListMembers(userID uint, groupID uint) ([]models.GroupMembership, error) {
	if err := service.RequireMember(groupID, userID); err != nil {
		return nil, err
	}
	memberships, err := service.groups.ListMemberships(groupID)
	if err != nil {
		return nil, ErrMembershipLoadFailed
	}
	return memberships, nil
}

// RequireMember is the authorization gate before any challenge, post or
// progress write scoped to the group.
func (service *GroupService) RequireMember(groupID uint, userID uint) error {
	_, isMember, err := service.groups.FindMembership(groupID, userID)
	if err != nil {
		return ErrMembershipLoadFailed
	}
	if !isMember {
		return ErrNotGroupMember
	}
	return nil
}

func (service *GroupService) FindMembership(groupID uint, userID uint) (models.GroupMembership, bool, error) {
	return service.groups.FindMembership(groupID, userID)
}

// LeaveGroup removes the caller's membership. An owner may only leave once
// every other member has left.
func (service *GroupService) LeaveGroup(userID uint, groupID uint) error {
	membership, isMember, err := service.groups.FindMembership(groupID, userID)
	if err != nil {
		return ErrMembershipLoadFailed
	}
	if !isMember {
		return ErrNotGroupMember
	}

	if membership.Role == models.RoleOwner {
		memberCount, err := service.groups.CountMembers(groupID)
		if err != nil {
			return ErrMembershipLoadFailed
		}
		if memberCount > 1 {
			return ErrOwnerCannotLeave
		}
	}

	if err := service.groups.RemoveMember(groupID, userID); err != nil {
		return ErrLeaveGroupFailed
	}
	return nil
}
