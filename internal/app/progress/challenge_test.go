package progress_test

import (
	"testing"
	"time"

	"github.com/lingua-network/lingua/internal/app/progress"
	"github.com/lingua-network/lingua/internal/domain"
)

func TestChallenges_GenerateWeekly(t *testing.T) {
	db := testDB(t)
	svc := progress.NewChallengeService(db)

	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) // Wednesday
	challenges, err := svc.GenerateWeeklyAt(now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(challenges) != 3 {
		t.Fatalf("expected 3 challenges, got %d", len(challenges))
	}

	monday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	for _, ch := range challenges {
		if !ch.ExpiresAt.Equal(monday) {
			t.Errorf("challenge %s: expected expiry %v, got %v", ch.ID, monday, ch.ExpiresAt)
		}
		if ch.Target <= 0 || ch.XPReward <= 0 {
			t.Errorf("challenge %s: bad template %+v", ch.ID, ch)
		}
	}
}

func TestChallenges_GenerateIdempotentWhileActive(t *testing.T) {
	db := testDB(t)
	svc := progress.NewChallengeService(db)

	first, err := svc.GenerateWeekly()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := svc.GenerateWeekly()
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected existing challenges returned, got %d vs %d", len(second), len(first))
	}

	active, err := svc.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 3 {
		t.Errorf("expected 3 active, got %d", len(active))
	}
}

func TestChallenges_ProgressAndCompletion(t *testing.T) {
	db := testDB(t)
	svc := progress.NewChallengeService(db)

	ch := domain.Challenge{
		ID:          "test-msgs",
		Type:        domain.ChallengeMessages,
		Description: "Send 5 messages",
		Target:      5,
		XPReward:    100,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
	if err := db.InsertChallenge(ch); err != nil {
		t.Fatalf("insert: %v", err)
	}

	completed, err := svc.RecordProgress(domain.ChallengeMessages, 3)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(completed) != 0 {
		t.Errorf("3/5 should not complete, got %v", completed)
	}

	completed, err = svc.RecordProgress(domain.ChallengeMessages, 2)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != "test-msgs" {
		t.Fatalf("expected completion, got %v", completed)
	}

	// Completed challenges leave the active set.
	active, _ := svc.Active()
	if len(active) != 0 {
		t.Errorf("completed challenge still active: %v", active)
	}
}

func TestChallenges_StreakProgressNotAdditive(t *testing.T) {
	db := testDB(t)
	svc := progress.NewChallengeService(db)

	ch := domain.Challenge{
		ID:          "test-streak",
		Type:        domain.ChallengeStreak,
		Description: "Keep a 3-day streak alive",
		Target:      3,
		XPReward:    120,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
	if err := db.InsertChallenge(ch); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// Reporting the same streak length twice must not double progress.
	if _, err := svc.RecordStreak(2); err != nil {
		t.Fatalf("streak: %v", err)
	}
	if _, err := svc.RecordStreak(2); err != nil {
		t.Fatalf("streak: %v", err)
	}
	got, err := db.GetChallenge("test-streak")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Progress != 2 {
		t.Errorf("expected progress 2, got %d", got.Progress)
	}

	completed, err := svc.RecordStreak(3)
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if len(completed) != 1 {
		t.Errorf("expected completion at streak 3, got %v", completed)
	}
}

func TestChallenges_CleanupExpired(t *testing.T) {
	db := testDB(t)
	svc := progress.NewChallengeService(db)

	old := domain.Challenge{
		ID:          "stale",
		Type:        domain.ChallengePractice,
		Description: "Practice for 60 minutes this week",
		Target:      60,
		XPReward:    200,
		ExpiresAt:   time.Now().Add(-time.Hour),
	}
	if err := db.InsertChallenge(old); err != nil {
		t.Fatalf("insert: %v", err)
	}

	removed, err := svc.CleanupExpired()
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}
}
