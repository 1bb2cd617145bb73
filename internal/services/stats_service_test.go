package services

import (
	"errors"
	"testing"
	"time"

	"github.com/haruchallenge/haru/internal/models"
)

type statsProgressStub struct {
	records []models.Progress
}

func (stub *statsProgressStub) ListByChallengeUserDates(challengeID uint, userID uint, fromDay string, toDay string) ([]models.Progress, error) {
	records := make([]models.Progress, 0)
	for _, record := range stub.records {
		if record.ChallengeID != challengeID || record.UserID != userID {
			continue
		}
		if record.Date < fromDay || record.Date > toDay {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (stub *statsProgressStub) ListByChallenge(challengeID uint) ([]models.Progress, error) {
	records := make([]models.Progress, 0)
	for _, record := range stub.records {
		if record.ChallengeID == challengeID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (stub *statsProgressStub) ListByChallengeUser(challengeID uint, userID uint) ([]models.Progress, error) {
	records := make([]models.Progress, 0)
	for _, record := range stub.records {
		if record.ChallengeID == challengeID && record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

type statsFixture struct {
	challengeID uint
	ownerID     uint
	memberID    uint
	progresses  *statsProgressStub
	service     *StatsService
}

// Fixed clock: 10:00 UTC on June 5th is 19:00 local, day "2024-06-05".
var statsNow = time.Date(2024, time.June, 5, 10, 0, 0, 0, time.UTC)

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()

	groups := newGroupStoreStub()
	groupService := NewGroupService(groups)
	group, err := groupService.CreateGroup(7, "stats group", "")
	if err != nil {
		t.Fatalf("CreateGroup() unexpected error: %v", err)
	}
	if _, err := groupService.JoinByInviteCode(8, group.InviteCode); err != nil {
		t.Fatalf("JoinByInviteCode() unexpected error: %v", err)
	}

	challengeService := NewChallengeService(newChallengeStoreStub(), groupService)
	challenge, err := challengeService.CreateChallenge(7, group.ID, ChallengeInput{
		Title:     "june streak",
		StartDate: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateChallenge() unexpected error: %v", err)
	}

	progresses := &statsProgressStub{}
	service := NewStatsService(progresses, challengeService).
		WithClock(func() time.Time { return statsNow })

	return &statsFixture{
		challengeID: challenge.ID,
		ownerID:     7,
		memberID:    8,
		progresses:  progresses,
		service:     service,
	}
}

func completedOn(challengeID uint, userID uint, day string) models.Progress {
	return models.Progress{
		ChallengeID: challengeID,
		UserID:      userID,
		Progress:    1.0,
		Date:        day,
	}
}

func TestChallengeCalendarMarksCompletedDays(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)
	fixture.progresses.records = []models.Progress{
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-01"),
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-03"),
		completedOn(fixture.challengeID, fixture.ownerID, "2024-06-02"),
	}

	days, err := fixture.service.ChallengeCalendar(fixture.memberID, fixture.challengeID, "2024-06")
	if err != nil {
		t.Fatalf("ChallengeCalendar() unexpected error: %v", err)
	}
	if len(days) != 30 {
		t.Fatalf("expected 30 calendar days for June, got %d", len(days))
	}
	if !days[0].Completed || days[0].Date != "2024-06-01" {
		t.Fatalf("expected 2024-06-01 completed, got %+v", days[0])
	}
	if days[1].Completed {
		t.Fatalf("expected 2024-06-02 incomplete for this member, got %+v", days[1])
	}
	if !days[2].Completed {
		t.Fatalf("expected 2024-06-03 completed, got %+v", days[2])
	}
}

func TestChallengeCalendarRejectsMalformedMonth(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)
	if _, err := fixture.service.ChallengeCalendar(fixture.memberID, fixture.challengeID, "June 2024"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestChallengeStatsRanksMembersByCompletedDays(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)
	fixture.progresses.records = []models.Progress{
		completedOn(fixture.challengeID, fixture.ownerID, "2024-06-01"),
		completedOn(fixture.challengeID, fixture.ownerID, "2024-06-02"),
		completedOn(fixture.challengeID, fixture.ownerID, "2024-06-03"),
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-01"),
	}

	stats, err := fixture.service.ChallengeStats(fixture.memberID, fixture.challengeID)
	if err != nil {
		t.Fatalf("ChallengeStats() unexpected error: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected stats for two members, got %d", len(stats))
	}
	if stats[0].UserID != fixture.ownerID || stats[0].CompletedDays != 3 {
		t.Fatalf("expected owner ranked first with 3 days, got %+v", stats[0])
	}
	// Five local days of the challenge have elapsed on the fixed clock.
	if stats[0].TotalDays != 5 {
		t.Fatalf("expected 5 elapsed days, got %d", stats[0].TotalDays)
	}
	if stats[0].CompletionRate != 3.0/5.0 {
		t.Fatalf("expected completion rate 0.6, got %f", stats[0].CompletionRate)
	}
	if stats[1].UserID != fixture.memberID || stats[1].CompletedDays != 1 {
		t.Fatalf("expected member ranked second with 1 day, got %+v", stats[1])
	}
}

func TestChallengeDailyTotalsSumAcrossMembers(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)
	fixture.progresses.records = []models.Progress{
		completedOn(fixture.challengeID, fixture.ownerID, "2024-06-01"),
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-01"),
		completedOn(fixture.challengeID, fixture.ownerID, "2024-06-02"),
	}

	totals, err := fixture.service.ChallengeDailyTotals(fixture.memberID, fixture.challengeID)
	if err != nil {
		t.Fatalf("ChallengeDailyTotals() unexpected error: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected totals for two days, got %d", len(totals))
	}
	if totals[0].Date != "2024-06-01" || totals[0].Total != 2.0 || totals[0].Count != 2 {
		t.Fatalf("unexpected first day totals %+v", totals[0])
	}
	if totals[1].Date != "2024-06-02" || totals[1].Total != 1.0 || totals[1].Count != 1 {
		t.Fatalf("unexpected second day totals %+v", totals[1])
	}
}

func TestUserStreakAnchorsOnYesterdayWhenTodayIsEmpty(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)
	fixture.progresses.records = []models.Progress{
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-03"),
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-04"),
	}

	streak, err := fixture.service.UserStreak(fixture.memberID, fixture.challengeID)
	if err != nil {
		t.Fatalf("UserStreak() unexpected error: %v", err)
	}
	if streak != 2 {
		t.Fatalf("expected streak 2 anchored on yesterday, got %d", streak)
	}

	fixture.progresses.records = append(fixture.progresses.records,
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-05"))
	streak, err = fixture.service.UserStreak(fixture.memberID, fixture.challengeID)
	if err != nil {
		t.Fatalf("UserStreak() unexpected error: %v", err)
	}
	if streak != 3 {
		t.Fatalf("expected streak 3 including today, got %d", streak)
	}
}

func TestUserStreakBrokenByGap(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)
	fixture.progresses.records = []models.Progress{
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-01"),
		completedOn(fixture.challengeID, fixture.memberID, "2024-06-02"),
	}

	streak, err := fixture.service.UserStreak(fixture.memberID, fixture.challengeID)
	if err != nil {
		t.Fatalf("UserStreak() unexpected error: %v", err)
	}
	if streak != 0 {
		t.Fatalf("expected streak 0 after a gap, got %d", streak)
	}
}

func TestStatsRequireGroupMembership(t *testing.T) {
	t.Parallel()

	fixture := newStatsFixture(t)

	if _, err := fixture.service.ChallengeCalendar(99, fixture.challengeID, "2024-06"); !errors.Is(err, ErrNotGroupMember) {
		t.Fatalf("expected ErrNotGroupMember, got %v", err)
	}
	if _, err := fixture.service.ChallengeStats(99, fixture.challengeID); !errors.Is(err, ErrNotGroupMember) {
		t.Fatalf("expected ErrNotGroupMember, got %v", err)
	}
	if _, err := fixture.service.UserStreak(99, fixture.challengeID); !errors.Is(err, ErrNotGroupMember) {
		t.Fatalf("expected ErrNotGroupMember, got %v", err)
	}
}
