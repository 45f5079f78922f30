package sqlite

import (
	"database/sql"
	"time"

	"github.com/lingua-network/lingua/internal/domain"
)

// ─── Activity Events ────────────────────────────────────────────────────────

// InsertEvent appends a raw activity event to the audit log.
func (d *DB) InsertEvent(e domain.ActivityEvent) error {
	_, err := d.db.Exec(
		`INSERT INTO activity_events (id, kind, date, amount, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Date, e.Amount, e.CreatedAt.Unix(),
	)
	return err
}

// ListEvents returns the most recent events, newest first.
func (d *DB) ListEvents(limit int) ([]domain.ActivityEvent, error) {
	rows, err := d.db.Query(
		`SELECT id, kind, date, amount, created_at
		 FROM activity_events ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.ActivityEvent
	for rows.Next() {
		var e domain.ActivityEvent
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.Date, &e.Amount, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}

// EventCountForDate returns how many events were recorded for a date key.
func (d *DB) EventCountForDate(date string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM activity_events WHERE date = ?`, date,
	).Scan(&count)
	return count, err
}

// ClearEvents removes the whole audit log. Used by the engine's bulk clear.
func (d *DB) ClearEvents() error {
	_, err := d.db.Exec(`DELETE FROM activity_events`)
	return err
}

// ─── Challenges ─────────────────────────────────────────────────────────────

// InsertChallenge creates a new challenge.
func (d *DB) InsertChallenge(c domain.Challenge) error {
	_, err := d.db.Exec(
		`INSERT INTO challenges (id, type, description, target, progress, reward_xp, expires_at, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(c.Type), c.Description, c.Target, c.Progress,
		c.XPReward, c.ExpiresAt.Unix(), c.Completed,
	)
	return err
}

// GetChallenge retrieves a challenge by ID. Returns nil when absent.
func (d *DB) GetChallenge(id string) (*domain.Challenge, error) {
	row := d.db.QueryRow(
		`SELECT id, type, description, target, progress, reward_xp, expires_at, completed
		 FROM challenges WHERE id = ?`, id,
	)
	return scanChallenge(row)
}

// ListActiveChallenges returns non-expired, non-completed challenges.
func (d *DB) ListActiveChallenges(now time.Time) ([]domain.Challenge, error) {
	rows, err := d.db.Query(
		`SELECT id, type, description, target, progress, reward_xp, expires_at, completed
		 FROM challenges WHERE completed = 0 AND expires_at > ? ORDER BY expires_at ASC`,
		now.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var challenges []domain.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

// UpdateChallengeProgress increments challenge progress, clamped to the
// target. Returns the updated challenge.
func (d *DB) UpdateChallengeProgress(id string, delta int) (*domain.Challenge, error) {
	_, err := d.db.Exec(
		`UPDATE challenges SET progress = MIN(progress + ?, target) WHERE id = ? AND completed = 0`,
		delta, id,
	)
	if err != nil {
		return nil, err
	}
	return d.GetChallenge(id)
}

// CompleteChallenge marks a challenge as completed.
func (d *DB) CompleteChallenge(id string) error {
	_, err := d.db.Exec(`UPDATE challenges SET completed = 1 WHERE id = ?`, id)
	return err
}

// DeleteExpiredChallenges removes unfinished challenges that expired
// before the given time.
func (d *DB) DeleteExpiredChallenges(before time.Time) (int64, error) {
	result, err := d.db.Exec(
		`DELETE FROM challenges WHERE expires_at < ? AND completed = 0`, before.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ─── Notifications ──────────────────────────────────────────────────────────

// InsertNotification creates a new notification.
func (d *DB) InsertNotification(n domain.Notification) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO notifications (type, title, body, created_at, shown)
		 VALUES (?, ?, ?, ?, ?)`,
		string(n.Type), n.Title, n.Body, n.CreatedAt.Unix(), n.Shown,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// NotificationCountSince returns how many notifications were created at
// or after the given time.
func (d *DB) NotificationCountSince(since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM notifications WHERE created_at >= ?`, since.Unix(),
	).Scan(&count)
	return count, err
}

// ListPendingNotifications returns unshown notifications, newest first.
func (d *DB) ListPendingNotifications(limit int) ([]domain.Notification, error) {
	rows, err := d.db.Query(
		`SELECT id, type, title, body, created_at, shown
		 FROM notifications WHERE shown = 0 ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifs []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var createdAt int64
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Body, &createdAt, &n.Shown); err != nil {
			return nil, err
		}
		n.CreatedAt = time.Unix(createdAt, 0)
		notifs = append(notifs, n)
	}
	return notifs, rows.Err()
}

// MarkNotificationShown marks a notification as shown.
func (d *DB) MarkNotificationShown(id int64) error {
	result, err := d.db.Exec(`UPDATE notifications SET shown = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanChallenge(s scanner) (*domain.Challenge, error) {
	var c domain.Challenge
	var expiresAt int64
	err := s.Scan(&c.ID, &c.Type, &c.Description, &c.Target, &c.Progress,
		&c.XPReward, &expiresAt, &c.Completed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.ExpiresAt = time.Unix(expiresAt, 0)
	return &c, nil
}
