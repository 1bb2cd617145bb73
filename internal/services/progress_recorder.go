package services

import (
	"errors"
	"time"

	"github.com/haruchallenge/haru/internal/kst"
	"github.com/haruchallenge/haru/internal/models"
)

var (
	ErrDuplicateForDay       = errors.New("daily post limit reached for this challenge")
	ErrProgressLoadFailed    = errors.New("load progress record failed")
	ErrProgressWriteFailed   = errors.New("write progress record failed")
	ErrProgressDeleteFailed  = errors.New("delete progress record failed")
	ErrDailyLimitCheckFailed = errors.New("daily limit check failed")
)

const completedProgress = 1.0

type ProgressStore interface {
	FindInRange(challengeID uint, userID uint, start time.Time, end time.Time) (models.Progress, bool, error)
	Create(record *models.Progress) error
	Save(record *models.Progress) error
	DeleteByID(recordID uint) error
}

type ProgressPostStore interface {
	CountActiveInRange(challengeID uint, userID uint, start time.Time, end time.Time) (int64, error)
}

// ProgressRecorder maintains exactly one progress record per
// (user, challenge, local calendar day). Days are bucketed through the fixed
// KST offset regardless of server timezone.
type ProgressRecorder struct {
	progresses ProgressStore
	posts      ProgressPostStore
}

func NewProgressRecorder(progresses ProgressStore, posts ProgressPostStore) *ProgressRecorder {
	return &ProgressRecorder{
		progresses: progresses,
		posts:      posts,
	}
}

// RecordCompletion upserts the progress row for the local day that occurredAt
// falls on. Calling it twice for the same (user, challenge, day) leaves one
// row with progress 1.0. The row's created_at is pinned to occurredAt so the
// range lookup and the denormalized date string always agree on the bucket.
func (recorder *ProgressRecorder) RecordCompletion(userID uint, challengeID uint, occurredAt time.Time) error {
	dayStart, dayEnd := kst.DayBounds(occurredAt)

	record, found, err := recorder.progresses.FindInRange(challengeID, userID, dayStart, dayEnd)
	if err != nil {
		return ErrProgressLoadFailed
	}

	if found {
		record.Progress = completedProgress
		if err := recorder.progresses.Save(&record); err != nil {
			return ErrProgressWriteFailed
		}
		return nil
	}

	record = models.Progress{
		ChallengeID: challengeID,
		UserID:      userID,
		Progress:    completedProgress,
		Date:        kst.DayString(occurredAt),
		CreatedAt:   occurredAt.UTC(),
	}
	if err := recorder.progresses.Create(&record); err != nil {
		return ErrProgressWriteFailed
	}
	return nil
}

// RetractCompletion removes the progress row for the local day derived from
// the deleted post's original created_at. The row is kept when another
// non-deleted post still justifies that day, and a missing row is a no-op.
func (recorder *ProgressRecorder) RetractCompletion(userID uint, challengeID uint, occurredAt time.Time) error {
	dayStart, dayEnd := kst.DayBounds(occurredAt)

	remaining, err := recorder.posts.CountActiveInRange(challengeID, userID, dayStart, dayEnd)
	if err != nil {
		return ErrProgressLoadFailed
	}
	if remaining > 0 {
		return nil
	}

	record, found, err := recorder.progresses.FindInRange(challengeID, userID, dayStart, dayEnd)
	if err != nil {
		return ErrProgressLoadFailed
	}
	if !found {
		return nil
	}

	if err := recorder.progresses.DeleteByID(record.ID); err != nil {
		return ErrProgressDeleteFailed
	}
	return nil
}

// CanPostToday reports whether (user, challenge) has no non-deleted post on
// the local day that now falls on. It is the write gate for post creation.
func (recorder *ProgressRecorder) CanPostToday(userID uint, challengeID uint, now time.Time) (bool, error) {
	dayStart, dayEnd := kst.DayBounds(now)
	count, err := recorder.posts.CountActiveInRange(challengeID, userID, dayStart, dayEnd)
	if err != nil {
		return false, ErrDailyLimitCheckFailed
	}
	return count == 0, nil
}
