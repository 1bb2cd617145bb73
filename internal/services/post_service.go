package services

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/haruchallenge/haru/internal/kst"
	"github.com/haruchallenge/haru/internal/models"
)

var (
	ErrChallengeLoadFailed = errors.New("load challenge failed")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrNotGroupMember      = errors.New("not a member of this group")
	ErrPostNotFound        = errors.New("post not found")
	ErrNotPostAuthor       = errors.New("not the post author")
	ErrPostCreateFailed    = errors.New("create post failed")
	ErrPostUpdateFailed    = errors.New("update post failed")
	ErrPostDeleteFailed    = errors.New("delete post failed")
	ErrPostListFailed      = errors.New("list posts failed")
)

// Bookkeeping reports the outcome of the auxiliary progress-recording side
// effect separately from the primary operation. A failed side effect never
// fails the primary write; it is logged and surfaced here.
type Bookkeeping struct {
	Attempted bool
	Err       error
}

func (b Bookkeeping) OK() bool {
	return b.Attempted && b.Err == nil
}

type PostStore interface {
	Create(post *models.Post) error
	Save(post *models.Post) error
	FindByPublicID(publicID string) (models.Post, bool, error)
	ListByChallenge(challengeID uint, limit int, offset int) ([]models.Post, error)
	CountActiveInRange(challengeID uint, userID uint, start time.Time, end time.Time) (int64, error)
	MarkDeleted(postID uint) error
}

type ChallengeFinder interface {
	FindByID(challengeID uint) (models.Challenge, bool, error)
}

type MembershipChecker interface {
	FindMembership(groupID uint, userID uint) (models.GroupMembership, bool, error)
}

type PostInput struct {
	Title     string
	Content   string
	ImageURLs []string
}

type PostService struct {
	posts       PostStore
	challenges  ChallengeFinder
	memberships MembershipChecker
	recorder    *ProgressRecorder
	dayLocks    *keyedMutex
	now         func() time.Time
}

func NewPostService(posts PostStore, challenges ChallengeFinder, memberships MembershipChecker, recorder *ProgressRecorder) *PostService {
	return &PostService{
		posts:       posts,
		challenges:  challenges,
		memberships: memberships,
		recorder:    recorder,
		dayLocks:    newKeyedMutex(),
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (service *PostService) WithClock(now func() time.Time) *PostService {
	service.now = now
	return service
}

// CreatePost enforces the one-post-per-challenge-per-local-day rule, inserts
// the post, and records same-day completion as a best-effort side effect.
func (service *PostService) CreatePost(userID uint, challengeID uint, input PostInput) (models.Post, Bookkeeping, error) {
	challenge, err := service.loadChallengeForMember(userID, challengeID)
	if err != nil {
		return models.Post{}, Bookkeeping{}, err
	}

	// Serialize check-then-insert per (user, challenge); the store gives no
	// transactional guarantee across the two steps.
	unlock := service.dayLocks.lock(userID, challengeID)
	defer unlock()

	now := service.now()
	allowed, err := service.recorder.CanPostToday(userID, challengeID, now)
	if err != nil {
		return models.Post{}, Bookkeeping{}, err
	}
	if !allowed {
		return models.Post{}, Bookkeeping{}, ErrDuplicateForDay
	}

	imageURLs := input.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	post := models.Post{
		PublicID:    uuid.NewString(),
		ChallengeID: challengeID,
		GroupID:     challenge.GroupID,
		UserID:      userID,
		Title:       input.Title,
		Content:     input.Content,
		ImageURLs:   imageURLs,
		CreatedAt:   now.UTC(),
	}
	if err := service.posts.Create(&post); err != nil {
		return models.Post{}, Bookkeeping{}, ErrPostCreateFailed
	}

	bookkeeping := Bookkeeping{
		Attempted: true,
		Err:       service.recorder.RecordCompletion(userID, challengeID, post.CreatedAt),
	}
	if bookkeeping.Err != nil {
		log.Printf("record completion failed (user=%d challenge=%d day=%s): %v",
			userID, challengeID, kst.DayString(post.CreatedAt), bookkeeping.Err)
	}
	return post, bookkeeping, nil
}

// DeletePost soft-deletes the author's post and retracts the derived
// completion for the post's original local day, best-effort.
func (service *PostService) DeletePost(userID uint, publicID string) (Bookkeeping, error) {
	post, err := service.FetchPost(publicID)
	if err != nil {
		return Bookkeeping{}, err
	}
	if post.UserID != userID {
		return Bookkeeping{}, ErrNotPostAuthor
	}

	if err := service.posts.MarkDeleted(post.ID); err != nil {
		return Bookkeeping{}, ErrPostDeleteFailed
	}

	bookkeeping := Bookkeeping{
		Attempted: true,
		Err:       service.recorder.RetractCompletion(post.UserID, post.ChallengeID, post.CreatedAt),
	}
	if bookkeeping.Err != nil {
		log.Printf("retract completion failed (user=%d challenge=%d day=%s): %v",
			post.UserID, post.ChallengeID, kst.DayString(post.CreatedAt), bookkeeping.Err)
	}
	return bookkeeping, nil
}

// UpdatePost edits title/content/images in place. The post keeps its
// created_at, so it never moves across day buckets.
func (service *PostService) UpdatePost(userID uint, publicID string, input PostInput) (models.Post, error) {
	post, err := service.FetchPost(publicID)
	if err != nil {
		return models.Post{}, err
	}
	if post.UserID != userID {
		return models.Post{}, ErrNotPostAuthor
	}

	post.Title = input.Title
	post.Content = input.Content
	if input.ImageURLs != nil {
		post.ImageURLs = input.ImageURLs
	}
	if err := service.posts.Save(&post); err != nil {
		return models.Post{}, ErrPostUpdateFailed
	}
	return post, nil
}

func (service *PostService) FetchPost(publicID string) (models.Post, error) {
	post, found, err := service.posts.FindByPublicID(publicID)
	if err != nil {
		return models.Post{}, ErrPostListFailed
	}
	if !found || post.IsDeleted {
		return models.Post{}, ErrPostNotFound
	}
	return post, nil
}

func (service *PostService) ListChallengePosts(userID uint, challengeID uint, limit int, offset int) ([]models.Post, error) {
	if _, err := service.loadChallengeForMember(userID, challengeID); err != nil {
		return nil, err
	}
	posts, err := service.posts.ListByChallenge(challengeID, limit, offset)
	if err != nil {
		return nil, ErrPostListFailed
	}
	return posts, nil
}

func (service *PostService) loadChallengeForMember(userID uint, challengeID uint) (models.Challenge, error) {
	challenge, found, err := service.challenges.FindByID(challengeID)
	if err != nil {
		return models.Challenge{}, ErrChallengeLoadFailed
	}
	if !found {
		return models.Challenge{}, ErrChallengeNotFound
	}

	_, isMember, err := service.memberships.FindMembership(challenge.GroupID, userID)
	if err != nil {
		return models.Challenge{}, ErrMembershipLoadFailed
	}
	if !isMember {
		return models.Challenge{}, ErrNotGroupMember
	}
	return challenge, nil
}
