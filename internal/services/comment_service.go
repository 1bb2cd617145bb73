package services

import (
	"errors"

	"github.com/haruchallenge/haru/internal/models"
)

var (
	ErrCommentLoadFailed    = errors.New("load comment failed")
	ErrCommentWriteFailed   = errors.New("write comment failed")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrParentCommentInvalid = errors.New("parent comment not found on this post")
	ErrCommentDepthLimit    = errors.New("replies to replies are not allowed")
	ErrNotCommentAuthor     = errors.New("not the comment author")
	ErrLikeToggleFailed     = errors.New("toggle like failed")
)

type CommentStore interface {
	Create(comment *models.Comment) error
	Save(comment *models.Comment) error
	FindByID(commentID uint) (models.Comment, bool, error)
	ListByPost(postID uint) ([]models.Comment, error)
	CountByPost(postID uint) (int64, error)
	MarkDeleted(commentID uint) error
}

type LikeStore interface {
	Find(postID uint, userID uint) (models.PostLike, bool, error)
	Create(like *models.PostLike) error
	Delete(postID uint, userID uint) error
	CountByPost(postID uint) (int64, error)
	ExistsByPost(postID uint, userID uint) (bool, error)
}

type CommentService struct {
	comments CommentStore
	likes    LikeStore
}

func NewCommentService(comments CommentStore, likes LikeStore) *CommentService {
	return &CommentService{
		comments: comments,
		likes:    likes,
	}
}

// CreateComment adds a comment to a post. A reply's parent must be a live
// top-level comment of the same post; threads never nest deeper than two
// levels.
func (service *CommentService) CreateComment(userID uint, postID uint, parentID *uint, content string) (models.Comment, error) {
	if parentID != nil {
		parent, found, err := service.comments.FindByID(*parentID)
		if err != nil {
			return models.Comment{}, ErrCommentLoadFailed
		}
		if !found || parent.IsDeleted || parent.PostID != postID {
			return models.Comment{}, ErrParentCommentInvalid
		}
		if parent.ParentID != nil {
			return models.Comment{}, ErrCommentDepthLimit
		}
	}

	comment := models.Comment{
		PostID:   postID,
		UserID:   userID,
		ParentID: parentID,
		Content:  content,
	}
	if err := service.comments.Create(&comment); err != nil {
		return models.Comment{}, ErrCommentWriteFailed
	}
	return comment, nil
}

// ListPostComments returns live top-level comments with replies nested.
func (service *CommentService) ListPostComments(postID uint) ([]models.Comment, error) {
	comments, err := service.comments.ListByPost(postID)
	if err != nil {
		return nil, ErrCommentLoadFailed
	}

	topLevel := make([]models.Comment, 0, len(comments))
	repliesByParent := make(map[uint][]models.Comment)
	for _, comment := range comments {
		if comment.ParentID == nil {
			topLevel = append(topLevel, comment)
			continue
		}
		repliesByParent[*comment.ParentID] = append(repliesByParent[*comment.ParentID], comment)
	}

	for index := range topLevel {
		topLevel[index].Replies = repliesByParent[topLevel[index].ID]
	}
	return topLevel, nil
}

func (service *CommentService) UpdateComment(userID uint, commentID uint, content string) (models.Comment, error) {
	comment, err := service.fetchLiveComment(commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if comment.UserID != userID {
		return models.Comment{}, ErrNotCommentAuthor
	}

	comment.Content = content
	if err := service.comments.Save(&comment); err != nil {
		return models.Comment{}, ErrCommentWriteFailed
	}
	return comment, nil
}

func (service *CommentService) DeleteComment(userID uint, commentID uint) error {
	comment, err := service.fetchLiveComment(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotCommentAuthor
	}
	if err := service.comments.MarkDeleted(comment.ID); err != nil {
		return ErrCommentWriteFailed
	}
	return nil
}

// ToggleLike flips the caller's like on a post and returns the new state and
// total count.
func (service *CommentService) ToggleLike(userID uint, postID uint) (bool, int64, error) {
	_, exists, err := service.likes.Find(postID, userID)
	if err != nil {
		return false, 0, ErrLikeToggleFailed
	}

	if exists {
		if err := service.likes.Delete(postID, userID); err != nil {
			return false, 0, ErrLikeToggleFailed
		}
	} else {
		like := models.PostLike{PostID: postID, UserID: userID}
		if err := service.likes.Create(&like); err != nil {
			return false, 0, ErrLikeToggleFailed
		}
	}

	count, err := service.likes.CountByPost(postID)
	if err != nil {
		return !exists, 0, ErrLikeToggleFailed
	}
	return !exists, count, nil
}

// DecoratePosts fills the computed like/comment counters on a post page.
func (service *CommentService) DecoratePosts(posts []models.Post, viewerID uint) error {
	for index := range posts {
		likeCount, err := service.likes.CountByPost(posts[index].ID)
		if err != nil {
			return ErrCommentLoadFailed
		}
		commentCount, err := service.comments.CountByPost(posts[index].ID)
		if err != nil {
			return ErrCommentLoadFailed
		}
		liked, err := service.likes.ExistsByPost(posts[index].ID, viewerID)
		if err != nil {
			return ErrCommentLoadFailed
		}
		posts[index].LikeCount = likeCount
		posts[index].CommentCount = commentCount
		posts[index].Liked = liked
	}
	return nil
}

func (service *CommentService) fetchLiveComment(commentID uint) (models.Comment, error) {
	comment, found, err := service.comments.FindByID(commentID)
	if err != nil {
		return models.Comment{}, ErrCommentLoadFailed
	}
	if !found || comment.IsDeleted {
		return models.Comment{}, ErrCommentNotFound
	}
	return comment, nil
}
