package progress

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lingua-network/lingua/internal/domain"
	"github.com/lingua-network/lingua/internal/infra/sqlite"
)

// NotificationService manages user-facing notifications.
// Policy: a daily cap and quiet hours. Streak breaks are never
// announced — only positive events (achievement, level up, challenge).
type NotificationService struct {
	db     *sqlite.DB
	policy domain.NotificationPolicy
}

// NewNotificationService creates a notification service with the
// default policy.
func NewNotificationService(db *sqlite.DB) *NotificationService {
	return &NotificationService{db: db, policy: domain.DefaultNotificationPolicy()}
}

// NewNotificationServiceWithPolicy creates a notification service with
// a custom policy.
func NewNotificationServiceWithPolicy(db *sqlite.DB, policy domain.NotificationPolicy) *NotificationService {
	return &NotificationService{db: db, policy: policy}
}

// Create creates a notification if policy allows it.
// Returns the notification ID (0 if suppressed by policy).
func (n *NotificationService) Create(notif domain.Notification) (int64, error) {
	startOfDay := notif.CreatedAt.Truncate(24 * time.Hour)
	todayCount, err := n.db.NotificationCountSince(startOfDay)
	if err != nil {
		return 0, fmt.Errorf("count today: %w", err)
	}
	if todayCount >= n.policy.MaxPerDay {
		return 0, nil // suppressed — daily cap reached
	}
	if n.isQuietHour(notif.CreatedAt) {
		return 0, nil // suppressed — quiet hours
	}

	notif.Shown = false
	id, err := n.db.InsertNotification(notif)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}
	return id, nil
}

// Pending returns unshown notifications.
func (n *NotificationService) Pending(limit int) ([]domain.Notification, error) {
	return n.db.ListPendingNotifications(limit)
}

// MarkShown marks a notification as shown.
func (n *NotificationService) MarkShown(id int64) error {
	return n.db.MarkNotificationShown(id)
}

// Policy returns the current notification policy.
func (n *NotificationService) Policy() domain.NotificationPolicy {
	return n.policy
}

// isQuietHour returns true if the given time falls within quiet hours.
func (n *NotificationService) isQuietHour(t time.Time) bool {
	startHour, startMin := parseHHMM(n.policy.QuietStart)
	endHour, endMin := parseHHMM(n.policy.QuietEnd)

	timeMinutes := t.Hour()*60 + t.Minute()
	startMinutes := startHour*60 + startMin
	endMinutes := endHour*60 + endMin

	if startMinutes > endMinutes {
		// Wraps midnight: e.g., 22:00 – 08:00
		return timeMinutes >= startMinutes || timeMinutes < endMinutes
	}
	return timeMinutes >= startMinutes && timeMinutes < endMinutes
}

// parseHHMM parses "HH:MM" into hour and minute.
func parseHHMM(s string) (int, int) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h, m
}
