package progress_test

import (
	"testing"
	"time"

	"github.com/lingua-network/lingua/internal/app/progress"
	"github.com/lingua-network/lingua/internal/domain"
)

func testPolicy() domain.NotificationPolicy {
	return domain.NotificationPolicy{MaxPerDay: 3, QuietStart: "22:00", QuietEnd: "08:00"}
}

func TestNotifications_CreateAndShow(t *testing.T) {
	db := testDB(t)
	svc := progress.NewNotificationServiceWithPolicy(db, testPolicy())

	noon := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	id, err := svc.Create(domain.Notification{
		Type:      domain.NotifyAchievement,
		Title:     "Achievement unlocked!",
		Body:      "First Words",
		CreatedAt: noon,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected notification created, got suppressed")
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Title != "Achievement unlocked!" {
		t.Fatalf("unexpected pending set: %v", pending)
	}

	if err := svc.MarkShown(id); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = svc.Pending(10)
	if len(pending) != 0 {
		t.Errorf("shown notification still pending: %v", pending)
	}
}

func TestNotifications_DailyCap(t *testing.T) {
	db := testDB(t)
	svc := progress.NewNotificationServiceWithPolicy(db, testPolicy())

	noon := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		id, err := svc.Create(domain.Notification{
			Type:      domain.NotifyLevelUp,
			Title:     "Level up!",
			CreatedAt: noon.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if id == 0 {
			t.Fatalf("notification %d suppressed under the cap", i)
		}
	}

	id, err := svc.Create(domain.Notification{
		Type:      domain.NotifyLevelUp,
		Title:     "Level up!",
		CreatedAt: noon.Add(10 * time.Minute),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Error("fourth notification should be suppressed by the daily cap")
	}
}

func TestNotifications_QuietHours(t *testing.T) {
	db := testDB(t)
	svc := progress.NewNotificationServiceWithPolicy(db, testPolicy())

	// 23:30 falls inside 22:00-08:00 even though it wraps midnight.
	late := time.Date(2026, 3, 4, 23, 30, 0, 0, time.UTC)
	id, err := svc.Create(domain.Notification{Type: domain.NotifyChallenge, Title: "done", CreatedAt: late})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Error("expected suppression at 23:30")
	}

	early := time.Date(2026, 3, 5, 6, 0, 0, 0, time.UTC)
	id, err = svc.Create(domain.Notification{Type: domain.NotifyChallenge, Title: "done", CreatedAt: early})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Error("expected suppression at 06:00")
	}

	morning := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	id, err = svc.Create(domain.Notification{Type: domain.NotifyChallenge, Title: "done", CreatedAt: morning})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Error("09:00 is outside quiet hours, should not suppress")
	}
}

func TestNotifications_MarkShownUnknownID(t *testing.T) {
	db := testDB(t)
	svc := progress.NewNotificationServiceWithPolicy(db, testPolicy())

	if err := svc.MarkShown(999); err == nil {
		t.Error("expected error for unknown id")
	}
}
