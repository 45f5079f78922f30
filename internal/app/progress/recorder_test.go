package progress_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lingua-network/lingua/internal/app/progress"
	"github.com/lingua-network/lingua/internal/domain"
	"github.com/lingua-network/lingua/internal/infra/sqlite"
)

func testRecorder(t *testing.T) (*progress.Recorder, *progress.Engine, *sqlite.DB) {
	t.Helper()
	db := testDB(t)
	engine := progress.NewEngine(db)
	rec := progress.NewRecorder(engine, db, nil, nil, progress.DefaultXPRates())
	return rec, engine, db
}

func TestRecord_MessageFlow(t *testing.T) {
	rec, engine, db := testRecorder(t)
	ctx := context.Background()

	outcome, err := rec.Record(ctx, domain.EventMessage, "2026-03-01", 3)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if outcome.XPEarned != 30 {
		t.Errorf("expected 30 XP for 3 messages, got %d", outcome.XPEarned)
	}
	if outcome.Day.Messages != 3 || outcome.Day.XPEarned != 30 {
		t.Errorf("unexpected day record: %+v", outcome.Day)
	}
	if outcome.State.StreakDays != 1 {
		t.Errorf("expected streak started, got %d", outcome.State.StreakDays)
	}

	// The very first message unlocks First Words.
	if len(outcome.Unlocked) != 1 || outcome.Unlocked[0].ID != "first-words" {
		t.Fatalf("expected first-words unlock, got %v", outcome.Unlocked)
	}
	if outcome.State.TotalXP != 30+25 {
		t.Errorf("expected 55 total XP (event + reward), got %d", outcome.State.TotalXP)
	}

	// Audit trail written.
	count, err := db.EventCountForDate("2026-03-01")
	if err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 audit event, got %d", count)
	}

	// The ledger agrees with the outcome snapshot.
	day, _ := engine.DayProgress(ctx, "2026-03-01")
	if day.Messages != 3 {
		t.Errorf("ledger out of sync: %+v", day)
	}
}

func TestRecord_AccumulatesWithinDay(t *testing.T) {
	rec, _, _ := testRecorder(t)
	ctx := context.Background()

	if _, err := rec.Record(ctx, domain.EventMessage, "2026-03-01", 2); err != nil {
		t.Fatalf("record: %v", err)
	}
	outcome, err := rec.Record(ctx, domain.EventPractice, "2026-03-01", 10)
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	if outcome.Day.Messages != 2 {
		t.Errorf("earlier messages lost: %+v", outcome.Day)
	}
	if outcome.Day.PracticeMinutes != 10 {
		t.Errorf("expected 10 minutes, got %d", outcome.Day.PracticeMinutes)
	}
	// 2 messages at 10 each, 10 minutes at 2 each.
	if outcome.Day.XPEarned != 40 {
		t.Errorf("expected accumulated 40 XP, got %d", outcome.Day.XPEarned)
	}
	if outcome.State.StreakDays != 1 {
		t.Errorf("same-day events must not extend the streak: %d", outcome.State.StreakDays)
	}
}

func TestRecord_QuizHasNoLedgerCounter(t *testing.T) {
	rec, _, _ := testRecorder(t)

	outcome, err := rec.Record(context.Background(), domain.EventQuiz, "2026-03-01", 1)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if outcome.XPEarned != 25 {
		t.Errorf("expected 25 XP per quiz, got %d", outcome.XPEarned)
	}
	if outcome.Day.Messages != 0 || outcome.Day.PracticeMinutes != 0 {
		t.Errorf("quiz must not touch message/practice counters: %+v", outcome.Day)
	}
	if outcome.Day.XPEarned != 25 {
		t.Errorf("quiz XP still lands in the ledger, got %d", outcome.Day.XPEarned)
	}
}

func TestRecord_UnknownKindRejected(t *testing.T) {
	rec, engine, _ := testRecorder(t)

	_, err := rec.Record(context.Background(), domain.EventKind("juggling"), "2026-03-01", 1)
	if !errors.Is(err, domain.ErrUnknownEventKind) {
		t.Errorf("expected ErrUnknownEventKind, got %v", err)
	}
	if got := engine.State(context.Background()).TotalXP; got != 0 {
		t.Errorf("rejected event changed state: %d XP", got)
	}
}

func TestRecord_InvalidDateRejected(t *testing.T) {
	rec, _, _ := testRecorder(t)

	_, err := rec.Record(context.Background(), domain.EventMessage, "not-a-date", 1)
	if !errors.Is(err, domain.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestRecord_DefaultAmount(t *testing.T) {
	rec, _, _ := testRecorder(t)

	outcome, err := rec.Record(context.Background(), domain.EventMessage, "2026-03-01", 0)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if outcome.Event.Amount != 1 || outcome.XPEarned != 10 {
		t.Errorf("zero amount should default to 1, got %+v", outcome.Event)
	}
}

func TestRecord_ConcurrentSameDay(t *testing.T) {
	rec, engine, _ := testRecorder(t)
	ctx := context.Background()

	const workers = 8

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := rec.Record(ctx, domain.EventMessage, "2026-03-01", 1); err != nil {
				t.Errorf("record: %v", err)
			}
		}()
	}
	wg.Wait()

	day, err := engine.DayProgress(ctx, "2026-03-01")
	if err != nil {
		t.Fatalf("day: %v", err)
	}
	if day.Messages != workers {
		t.Errorf("lost increments: ledger has %d messages, want %d", day.Messages, workers)
	}
	if day.XPEarned != workers*10 {
		t.Errorf("lost increments: ledger has %d XP, want %d", day.XPEarned, workers*10)
	}
	if got := engine.State(ctx).TotalXP; got < workers*10 {
		t.Errorf("state has %d XP, want at least %d", got, workers*10)
	}
}

func TestRecord_FeedsChallenges(t *testing.T) {
	db := testDB(t)
	engine := progress.NewEngine(db)
	challenges := progress.NewChallengeService(db)
	rec := progress.NewRecorder(engine, db, challenges, nil, progress.DefaultXPRates())

	ch := domain.Challenge{
		ID:          "weekly-msgs",
		Type:        domain.ChallengeMessages,
		Description: "Send 5 messages",
		Target:      5,
		XPReward:    100,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
	if err := db.InsertChallenge(ch); err != nil {
		t.Fatalf("insert: %v", err)
	}

	outcome, err := rec.Record(context.Background(), domain.EventMessage, "2026-03-01", 5)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(outcome.CompletedChallenges) != 1 || outcome.CompletedChallenges[0].ID != "weekly-msgs" {
		t.Fatalf("expected challenge completion, got %v", outcome.CompletedChallenges)
	}

	// 50 event XP + 25 first-words + 100 challenge reward.
	state := engine.State(context.Background())
	if state.TotalXP != 175 {
		t.Errorf("expected 175 total XP, got %d", state.TotalXP)
	}
}
