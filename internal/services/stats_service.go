package services

import (
	"errors"
	"sort"
	"time"

	"github.com/haruchallenge/haru/internal/kst"
	"github.com/haruchallenge/haru/internal/models"
)

var (
	ErrStatsLoadFailed = errors.New("load stats failed")
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
)

type ProgressReader interface {
	ListByChallengeUserDates(challengeID uint, userID uint, fromDay string, toDay string) ([]models.Progress, error)
	ListByChallenge(challengeID uint) ([]models.Progress, error)
	ListByChallengeUser(challengeID uint, userID uint) ([]models.Progress, error)
}

type CalendarDay struct {
	Date      string  `json:"date"`
	Completed bool    `json:"completed"`
	Progress  float64 `json:"progress"`
}

type MemberStats struct {
	UserID         uint    `json:"user_id"`
	Nickname       string  `json:"nickname"`
	CompletedDays  int     `json:"completed_days"`
	TotalDays      int     `json:"total_days"`
	CompletionRate float64 `json:"completion_rate"`
}

type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type StatsService struct {
	progresses ProgressReader
	challenges *ChallengeService
	now        func() time.Time
}

func NewStatsService(progresses ProgressReader, challenges *ChallengeService) *StatsService {
	return &StatsService{
		progresses: progresses,
		challenges: challenges,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Test hook.
func (service *StatsService) WithClock(now func() time.Time) *StatsService {
	service.now = now
	return service
}

// ChallengeCalendar returns one entry per local calendar day of the given
// month for the caller's own progress.
func (service *StatsService) ChallengeCalendar(userID uint, challengeID uint, month string) ([]CalendarDay, error) {
	if _, err := service.challenges.FetchChallengeForMember(userID, challengeID); err != nil {
		return nil, err
	}

	firstDay, err := time.ParseInLocation("2006-01", month, kst.Zone)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	lastDay := firstDay.AddDate(0, 1, -1)

	records, err := service.progresses.ListByChallengeUserDates(
		challengeID, userID, kst.DayString(firstDay), kst.DayString(lastDay))
	if err != nil {
		return nil, ErrStatsLoadFailed
	}

	progressByDay := make(map[string]float64, len(records))
	for _, record := range records {
		progressByDay[record.Date] = record.Progress
	}

	days := make([]CalendarDay, 0, 31)
	for cursor := firstDay; !cursor.After(lastDay); cursor = cursor.AddDate(0, 0, 1) {
		dayKey := kst.DayString(cursor)
		value := progressByDay[dayKey]
		days = append(days, CalendarDay{
			Date:      dayKey,
			Completed: value >= completedProgress,
			Progress:  value,
		})
	}
	return days, nil
}

// ChallengeStats aggregates completed-day counts per member over the portion
// of the challenge range that has elapsed so far.
func (service *StatsService) ChallengeStats(userID uint, challengeID uint) ([]MemberStats, error) {
	challenge, err := service.challenges.FetchChallengeForMember(userID, challengeID)
	if err != nil {
		return nil, err
	}

	records, err := service.progresses.ListByChallenge(challengeID)
	if err != nil {
		return nil, ErrStatsLoadFailed
	}

	totalDays := elapsedChallengeDays(challenge, service.now())
	completedByUser := make(map[uint]int)
	for _, record := range records {
		if record.Progress >= completedProgress {
			completedByUser[record.UserID]++
		}
	}

	stats := make([]MemberStats, 0, len(completedByUser))
	for memberID, completed := range completedByUser {
		rate := 0.0
		if totalDays > 0 {
			rate = float64(completed) / float64(totalDays)
		}
		stats = append(stats, MemberStats{
			UserID:         memberID,
			CompletedDays:  completed,
			TotalDays:      totalDays,
			CompletionRate: rate,
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].CompletedDays == stats[j].CompletedDays {
			return stats[i].UserID < stats[j].UserID
		}
		return stats[i].CompletedDays > stats[j].CompletedDays
	})
	return stats, nil
}

// ChallengeDailyTotals sums the progress column across members per local day.
func (service *StatsService) ChallengeDailyTotals(userID uint, challengeID uint) ([]DayTotal, error) {
	if _, err := service.challenges.FetchChallengeForMember(userID, challengeID); err != nil {
		return nil, err
	}

	records, err := service.progresses.ListByChallenge(challengeID)
	if err != nil {
		return nil, ErrStatsLoadFailed
	}

	totalsByDay := make(map[string]*DayTotal)
	for _, record := range records {
		total, ok := totalsByDay[record.Date]
		if !ok {
			total = &DayTotal{Date: record.Date}
			totalsByDay[record.Date] = total
		}
		total.Total += record.Progress
		total.Count++
	}

	totals := make([]DayTotal, 0, len(totalsByDay))
	for _, total := range totalsByDay {
		totals = append(totals, *total)
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Date < totals[j].Date })
	return totals, nil
}

// UserStreak counts consecutive completed local days ending today, or ending
// yesterday when today has no post yet.
func (service *StatsService) UserStreak(userID uint, challengeID uint) (int, error) {
	if _, err := service.challenges.FetchChallengeForMember(userID, challengeID); err != nil {
		return 0, err
	}

	records, err := service.progresses.ListByChallengeUser(challengeID, userID)
	if err != nil {
		return 0, ErrStatsLoadFailed
	}

	completedDays := make(map[string]bool, len(records))
	for _, record := range records {
		if record.Progress >= completedProgress {
			completedDays[record.Date] = true
		}
	}

	day := kst.Date(service.now())
	if !completedDays[kst.DayString(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for completedDays[kst.DayString(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func elapsedChallengeDays(challenge models.Challenge, now time.Time) int {
	start := kst.Date(challenge.StartDate)
	today := kst.Date(now)
	if today.Before(start) {
		return 0
	}

	end := kst.Date(challenge.EndDate)
	if end.After(today) {
		end = today
	}
	return int(end.Sub(start).Hours()/24) + 1
}
