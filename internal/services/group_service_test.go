package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/haruchallenge/haru/internal/models"
)

type groupStoreStub struct {
	groups      map[uint]models.Group
	memberships map[[2]uint]models.GroupMembership
	nextID      uint
	createFails int
}

func newGroupStoreStub() *groupStoreStub {
	return &groupStoreStub{
		groups:      make(map[uint]models.Group),
		memberships: make(map[[2]uint]models.GroupMembership),
		nextID:      1,
	}
}

func (stub *groupStoreStub) CreateWithOwner(group *models.Group) error {
	if stub.createFails > 0 {
		stub.createFails--
		return errors.New("invite code collision")
	}
	group.ID = stub.nextID
	stub.nextID++
	stub.groups[group.ID] = *group
	stub.memberships[[2]uint{group.ID, group.CreatedBy}] = models.GroupMembership{
		GroupID: group.ID,
		UserID:  group.CreatedBy,
		Role:    models.RoleOwner,
	}
	return nil
}

func (stub *groupStoreStub) FindByID(groupID uint) (models.Group, error) {
	group, ok := stub.groups[groupID]
	if !ok {
		return models.Group{}, errors.New("group not found")
	}
	return group, nil
}

func (stub *groupStoreStub) FindByInviteCode(code string) (models.Group, bool, error) {
	for _, group := range stub.groups {
		if group.InviteCode == code {
			return group, true, nil
		}
	}
	return models.Group{}, false, nil
}

func (stub *groupStoreStub) ListByUser(userID uint) ([]models.Group, error) {
	groups := make([]models.Group, 0)
	for key, membership := range stub.memberships {
		if membership.UserID != userID {
			continue
		}
		groups = append(groups, stub.groups[key[0]])
	}
	return groups, nil
}

func (stub *groupStoreStub) FindMembership(groupID uint, userID uint) (models.GroupMembership, bool, error) {
	membership, ok := stub.memberships[[2]uint{groupID, userID}]
	return membership, ok, nil
}

func (stub *groupStoreStub) ListMemberships(groupID uint) ([]models.GroupMembership, error) {
	memberships := make([]models.GroupMembership, 0)
	for key, membership := range stub.memberships {
		if key[0] == groupID {
			memberships = append(memberships, membership)
		}
	}
	return memberships, nil
}

func (stub *groupStoreStub) CountMembers(groupID uint) (int64, error) {
	var count int64
	for key := range stub.memberships {
		if key[0] == groupID {
			count++
		}
	}
	return count, nil
}

func (stub *groupStoreStub) AddMember(membership *models.GroupMembership) error {
	key := [2]uint{membership.GroupID, membership.UserID}
	if _, exists := stub.memberships[key]; exists {
		return errors.New("duplicate membership")
	}
	stub.memberships[key] = *membership
	return nil
}

func (stub *groupStoreStub) RemoveMember(groupID uint, userID uint) error {
	delete(stub.memberships, [2]uint{groupID, userID})
	return nil
}

func TestCreateGroupAssignsInviteCodeAndOwnerRole(t *testing.T) {
	t.Parallel()

	groups := newGroupStoreStub()
	service := NewGroupService(groups)

	group, err := service.CreateGroup(7, "morning runners", "we run")
	if err != nil {
		t.Fatalf("CreateGroup() unexpected error: %v", err)
	}
	if len(group.InviteCode) != inviteCodeLength {
		t.Fatalf("expected invite code of %d chars, got %q", inviteCodeLength, group.InviteCode)
	}
	for _, char := range group.InviteCode {
		if !strings.ContainsRune(inviteCodeAlphabet, char) {
			t.Fatalf("invite code %q contains char outside alphabet", group.InviteCode)
		}
	}

	membership, isMember, err := groups.FindMembership(group.ID, 7)
	if err != nil || !isMember {
		t.Fatalf("expected creator membership, got isMember=%v err=%v", isMember, err)
	}
	if membership.Role != models.RoleOwner {
		t.Fatalf("expected owner role for creator, got %q", membership.Role)
	}
}

func TestCreateGroupRetriesAfterInviteCodeCollision(t *testing.T) {
	t.Parallel()

	groups := newGroupStoreStub()
	groups.createFails = 2
	service := NewGroupService(groups)

	if _, err := service.CreateGroup(7, "retry group", ""); err != nil {
		t.Fatalf("expected create to succeed after collisions, got %v", err)
	}

	groups = newGroupStoreStub()
	groups.createFails = 10
	service = NewGroupService(groups)
	if _, err := service.CreateGroup(7, "doomed group", ""); !errors.Is(err, ErrGroupCreateFailed) {
		t.Fatalf("expected ErrGroupCreateFailed after exhausted retries, got %v", err)
	}
}

func TestJoinByInviteCode(t *testing.T) {
	t.Parallel()

	groups := newGroupStoreStub()
	service := NewGroupService(groups)

	group, err := service.CreateGroup(7, "joinable", "")
	if err != nil {
		t.Fatalf("CreateGroup() unexpected error: %v", err)
	}

	joined, err := service.JoinByInviteCode(8, group.InviteCode)
	if err != nil {
		t.Fatalf("JoinByInviteCode() unexpected error: %v", err)
	}
	if joined.ID != group.ID {
		t.Fatalf("expected joined group %d, got %d", group.ID, joined.ID)
	}
	membership, isMember, _ := groups.FindMembership(group.ID, 8)
	if !isMember || membership.Role != models.RoleMember {
		t.Fatalf("expected member role, got isMember=%v role=%q", isMember, membership.Role)
	}

	if _, err := service.JoinByInviteCode(8, group.InviteCode); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if _, err := service.JoinByInviteCode(8, "NOPENOPE"); !errors.Is(err, ErrInviteCodeNotFound) {
		t.Fatalf("expected ErrInviteCodeNotFound, got %v", err)
	}
}

func TestRequireMemberGate(t *testing.T) {
	t.Parallel()

	groups := newGroupStoreStub()
	service := NewGroupService(groups)

	group, err := service.CreateGroup(7, "gated", "")
	if err != nil {
		t.Fatalf("CreateGroup() unexpected error: %v", err)
	}

	if err := service.RequireMember(group.ID, 7); err != nil {
		t.Fatalf("expected member to pass the gate, got %v", err)
	}
	if err := service.RequireMember(group.ID, 99); !errors.Is(err, ErrNotGroupMember) {
		t.Fatalf("expected ErrNotGroupMember, got %v", err)
	}
}

func TestLeaveGroupOwnerRules(t *testing.T) {
	t.Parallel()

	groups := newGroupStoreStub()
	service := NewGroupService(groups)

	group, err := service.CreateGroup(7, "leavable", "")
	if err != nil {
		t.Fatalf("CreateGroup() unexpected error: %v", err)
	}
	if _, err := service.JoinByInviteCode(8, group.InviteCode); err != nil {
		t.Fatalf("JoinByInviteCode() unexpected error: %v", err)
	}

	if err := service.LeaveGroup(7, group.ID); !errors.Is(err, ErrOwnerCannotLeave) {
		t.Fatalf("expected ErrOwnerCannotLeave while members remain, got %v", err)
	}

	if err := service.LeaveGroup(8, group.ID); err != nil {
		t.Fatalf("expected member to leave, got %v", err)
	}
	if err := service.LeaveGroup(7, group.ID); err != nil {
		t.Fatalf("expected lone owner to leave, got %v", err)
	}

	if err := service.LeaveGroup(99, group.ID); !errors.Is(err, ErrNotGroupMember) {
		t.Fatalf("expected ErrNotGroupMember for outsider, got %v", err)
	}
}
