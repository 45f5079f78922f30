// Package domain holds the progress engine's core types.
// The engine converts raw practice activity (messages, minutes, quizzes)
// into durable motivational state: XP, levels, streaks, and achievements.
package domain

import "time"

// ─── Level Ladder Types ─────────────────────────────────────────────────────

// LevelTier is one named band of cumulative XP.
// Tiers are sorted ascending by Level with strictly increasing MinXP;
// a tier's MaxXP equals the next tier's MinXP. The last tier is
// unbounded and carries MaxXP == 0.
type LevelTier struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	MinXP int    `json:"min_xp"`
	MaxXP int    `json:"max_xp"`
}

// Unbounded reports whether this is the open-ended top tier.
func (t LevelTier) Unbounded() bool { return t.MaxXP == 0 }

// TierProgress describes position within a tier.
type TierProgress struct {
	Current    int `json:"current"`
	Max        int `json:"max"`
	Percentage int `json:"percentage"`
}

// ─── Player State ───────────────────────────────────────────────────────────

// PlayerState is the mutable per-user gamification record.
// Invariants: Level == Classify(TotalXP).Level and
// CurrentXP == TotalXP - Classify(TotalXP).MinXP.
type PlayerState struct {
	Level                int      `json:"level"`
	CurrentXP            int      `json:"current_xp"`
	TotalXP              int      `json:"total_xp"`
	StreakDays           int      `json:"streak_days"`
	LastActiveDate       string   `json:"last_active_date"`
	UnlockedAchievements []string `json:"unlocked_achievements"`
}

// DefaultPlayerState is the canonical state created lazily on first read.
func DefaultPlayerState() PlayerState {
	return PlayerState{Level: 1}
}

// HasAchievement reports whether the achievement id is already unlocked.
func (p PlayerState) HasAchievement(id string) bool {
	for _, a := range p.UnlockedAchievements {
		if a == id {
			return true
		}
	}
	return false
}

// XPResult reports the outcome of an AddXP call.
type XPResult struct {
	TotalXP   int       `json:"total_xp"`
	LeveledUp bool      `json:"leveled_up"`
	Tier      LevelTier `json:"tier"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory selects which predicate an achievement is tested with.
type AchievementCategory string

const (
	CatStreak       AchievementCategory = "streak"
	CatConversation AchievementCategory = "conversation"
	CatPractice     AchievementCategory = "practice"
	CatMilestone    AchievementCategory = "milestone"
)

// Achievement is one entry of the static catalog. Never mutated at runtime.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Requirement int                 `json:"requirement"`
	XPReward    int                 `json:"xp_reward"`
}

// ActivityStats is the aggregate snapshot fed to achievement predicates.
type ActivityStats struct {
	MessagesTotal int `json:"messages_total"`
	MinutesTotal  int `json:"minutes_total"`
}

// ─── Daily Ledger Types ─────────────────────────────────────────────────────

// DailyProgress holds per-calendar-day activity counters, keyed by Date.
type DailyProgress struct {
	Date            string `json:"date"`
	Messages        int    `json:"messages_count"`
	PracticeMinutes int    `json:"practice_minutes"`
	XPEarned        int    `json:"xp_earned"`
}

// DailyFields is a partial update for a day's record. Nil fields are
// left untouched; present fields overwrite (never accumulate).
type DailyFields struct {
	Messages        *int
	PracticeMinutes *int
	XPEarned        *int
}

// DailyTotals are lifetime sums folded over all ledger records.
type DailyTotals struct {
	Days            int `json:"days"`
	Messages        int `json:"messages"`
	PracticeMinutes int `json:"practice_minutes"`
	XPEarned        int `json:"xp_earned"`
}

// ProgressSummary is a derived, never-persisted rollup view.
type ProgressSummary struct {
	TotalSessions int   `json:"total_sessions"`
	TotalMinutes  int   `json:"total_minutes"`
	TotalXP       int   `json:"total_xp"`
	CurrentStreak int   `json:"current_streak"`
	LongestStreak int   `json:"longest_streak"`
	WeeklyData    []int `json:"weekly_data"`
	MonthlyData   []int `json:"monthly_data"`
}

// ─── Activity Events ────────────────────────────────────────────────────────

// EventKind categorizes a raw activity event.
type EventKind string

const (
	EventMessage  EventKind = "message"
	EventPractice EventKind = "practice"
	EventQuiz     EventKind = "quiz"
)

// ActivityEvent is one raw caller event, appended to the audit log.
type ActivityEvent struct {
	ID        string    `json:"id"`
	Kind      EventKind `json:"kind"`
	Date      string    `json:"date"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Challenge Types ────────────────────────────────────────────────────────

// ChallengeType categorizes the kind of weekly challenge.
type ChallengeType string

const (
	ChallengeMessages ChallengeType = "messages"
	ChallengePractice ChallengeType = "practice"
	ChallengeStreak   ChallengeType = "streak"
)

// Challenge is a weekly target with progress tracking.
type Challenge struct {
	ID          string        `json:"id"`
	Type        ChallengeType `json:"type"`
	Description string        `json:"description"`
	Target      int           `json:"target"`
	Progress    int           `json:"progress"`
	XPReward    int           `json:"xp_reward"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Completed   bool          `json:"completed"`
}

// IsExpired returns true if the challenge deadline has passed.
func (c Challenge) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// ProgressPct returns completion percentage (0-100).
func (c Challenge) ProgressPct() float64 {
	if c.Target <= 0 {
		return 100.0
	}
	pct := float64(c.Progress) / float64(c.Target) * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}

// ChallengeTemplate defines the pool of possible challenges.
type ChallengeTemplate struct {
	Type        ChallengeType `json:"type"`
	Target      int           `json:"target"`
	Description string        `json:"description"`
	XPReward    int           `json:"xp_reward"`
}

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes notifications.
type NotificationType string

const (
	NotifyAchievement NotificationType = "achievement"
	NotifyLevelUp     NotificationType = "level_up"
	NotifyChallenge   NotificationType = "challenge_complete"
)

// Notification is a user-facing message.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often notifications are created.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy returns the shipping policy.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  3,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
