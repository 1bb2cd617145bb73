package services

import (
	"errors"
	"time"

	"github.com/haruchallenge/haru/internal/models"
)

var (
	ErrChallengeCreateFailed = errors.New("create challenge failed")
	ErrChallengeUpdateFailed = errors.New("update challenge failed")
	ErrChallengeDeleteFailed = errors.New("delete challenge failed")
	ErrNotChallengeEditor    = errors.New("only the creator or group owner may modify this challenge")
	ErrInvalidChallengeDates = errors.New("challenge end date before start date")
)

type ChallengeStore interface {
	Create(challenge *models.Challenge) error
	FindByID(challengeID uint) (models.Challenge, bool, error)
	ListByGroup(groupID uint) ([]models.Challenge, error)
	Save(challenge *models.Challenge) error
	DeleteWithRelated(challengeID uint) error
}

type ChallengeInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

type ChallengeService struct {
	challenges ChallengeStore
	groups     *GroupService
}

func NewChallengeService(challenges ChallengeStore, groups *GroupService) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		groups:     groups,
	}
}

func (service *ChallengeService) CreateChallenge(userID uint, groupID uint, input ChallengeInput) (models.Challenge, error) {
	if err := service.groups.RequireMember(groupID, userID); err != nil {
		return models.Challenge{}, err
	}
	if input.EndDate.Before(input.StartDate) {
		return models.Challenge{}, ErrInvalidChallengeDates
	}

	challenge := models.Challenge{
		GroupID:     groupID,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   userID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := service.challenges.Create(&challenge); err != nil {
		return models.Challenge{}, ErrChallengeCreateFailed
	}
	return challenge, nil
}

func (service *ChallengeService) ListGroupChallenges(userID uint, groupID uint) ([]models.Challenge, error) {
	if err := service.groups.RequireMember(groupID, userID); err != nil {
		return nil, err
	}
	challenges, err := service.challenges.ListByGroup(groupID)
	if err != nil {
		return nil, ErrChallengeLoadFailed
	}
	return challenges, nil
}

func (service *ChallengeService) FetchChallengeForMember(userID uint, challengeID uint) (models.Challenge, error) {
	challenge, found, err := service.challenges.FindByID(challengeID)
	if err != nil {
		return models.Challenge{}, ErrChallengeLoadFailed
	}
	if !found {
		return models.Challenge{}, ErrChallengeNotFound
	}
	if err := service.groups.RequireMember(challenge.GroupID, userID); err != nil {
		return models.Challenge{}, err
	}
	return challenge, nil
}

func (service *ChallengeService) UpdateChallenge(userID uint, challengeID uint, input ChallengeInput) (models.Challenge, error) {
	challenge, err := service.fetchChallengeForEditor(userID, challengeID)
	if err != nil {
		return models.Challenge{}, err
	}
	if input.EndDate.Before(input.StartDate) {
		return models.Challenge{}, ErrInvalidChallengeDates
	}

	challenge.Title = input.Title
	challenge.Description = input.Description
	challenge.StartDate = input.StartDate
	challenge.EndDate = input.EndDate
	if err := service.challenges.Save(&challenge); err != nil {
		return models.Challenge{}, ErrChallengeUpdateFailed
	}
	return challenge, nil
}

func (service *ChallengeService) DeleteChallenge(userID uint, challengeID uint) error {
	challenge, err := service.fetchChallengeForEditor(userID, challengeID)
	if err != nil {
		return err
	}
	if err := service.challenges.DeleteWithRelated(challenge.ID); err != nil {
		return ErrChallengeDeleteFailed
	}
	return nil
}

func (service *ChallengeService) fetchChallengeForEditor(userID uint, challengeID uint) (models.Challenge, error) {
	challenge, err := service.FetchChallengeForMember(userID, challengeID)
	if err != nil {
		return models.Challenge{}, err
	}
	if challenge.CreatedBy == userID {
		return challenge, nil
	}

	membership, isMember, err := service.groups.FindMembership(challenge.GroupID, userID)
	if err != nil || !isMember {
		return models.Challenge{}, ErrMembershipLoadFailed
	}
	if membership.Role != models.RoleOwner {
		return models.Challenge{}, ErrNotChallengeEditor
	}
	return challenge, nil
}
