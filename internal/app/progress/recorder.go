package progress

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/lingua-network/lingua/internal/domain"
	"github.com/lingua-network/lingua/internal/infra/metrics"
	"github.com/lingua-network/lingua/internal/infra/sqlite"
)

// XPRates maps raw activity to experience points.
type XPRates struct {
	Message        int
	PracticeMinute int
	Quiz           int
}

// DefaultXPRates returns the shipping rates.
func DefaultXPRates() XPRates {
	return XPRates{Message: 10, PracticeMinute: 2, Quiz: 25}
}

// EventOutcome reports everything a recorded event changed.
type EventOutcome struct {
	Event               domain.ActivityEvent `json:"event"`
	XPEarned            int                  `json:"xp_earned"`
	Day                 domain.DailyProgress `json:"day"`
	XP                  domain.XPResult      `json:"xp"`
	State               domain.PlayerState   `json:"state"`
	Unlocked            []domain.Achievement `json:"unlocked,omitempty"`
	CompletedChallenges []domain.Challenge   `json:"completed_challenges,omitempty"`
}

// Recorder drives the full flow for one caller event: append to the
// audit log, increment today's ledger counters, add XP, advance the
// streak, evaluate achievements with fresh aggregate stats, and feed
// challenge progress. UI and onboarding callers go through here.
type Recorder struct {
	engine     *Engine
	db         *sqlite.DB
	challenges *ChallengeService
	notify     *NotificationService
	rates      XPRates
}

// NewRecorder wires a recorder. challenges and notify may be nil when
// those features are disabled.
func NewRecorder(engine *Engine, db *sqlite.DB, challenges *ChallengeService, notify *NotificationService, rates XPRates) *Recorder {
	return &Recorder{
		engine:     engine,
		db:         db,
		challenges: challenges,
		notify:     notify,
		rates:      rates,
	}
}

// Record processes one activity event dated by the caller-supplied
// calendar key. amount is the message count, practice minutes, or quiz
// count depending on kind.
func (r *Recorder) Record(ctx context.Context, kind domain.EventKind, date string, amount int) (EventOutcome, error) {
	if amount <= 0 {
		amount = 1
	}
	xp, err := r.xpFor(kind, amount)
	if err != nil {
		return EventOutcome{}, err
	}

	event := domain.ActivityEvent{
		ID:        uuid.NewString(),
		Kind:      kind,
		Date:      date,
		Amount:    amount,
		CreatedAt: time.Now(),
	}

	// Ledger first: one locked read-modify-write per event.
	delta := domain.DailyProgress{XPEarned: xp}
	switch kind {
	case domain.EventMessage:
		delta.Messages = amount
	case domain.EventPractice:
		delta.PracticeMinutes = amount
	}

	day, err := r.engine.AddProgress(ctx, date, delta)
	if err != nil {
		return EventOutcome{}, err
	}

	if err := r.db.InsertEvent(event); err != nil {
		return EventOutcome{}, fmt.Errorf("insert event: %w", err)
	}

	// Then XP and streak.
	result, err := r.engine.AddXP(ctx, xp)
	if err != nil {
		return EventOutcome{}, err
	}
	state, err := r.engine.RecordActivity(ctx, date)
	if err != nil {
		return EventOutcome{}, err
	}

	// Then achievements, against freshly recomputed aggregates.
	totals := r.engine.Totals(ctx)
	stats := domain.ActivityStats{
		MessagesTotal: totals.Messages,
		MinutesTotal:  totals.PracticeMinutes,
	}
	unlocked, err := r.engine.EvaluateAchievements(ctx, stats)
	if err != nil {
		return EventOutcome{}, err
	}
	if len(unlocked) > 0 {
		state = r.engine.State(ctx)
	}

	completed := r.advanceChallenges(ctx, kind, amount, state.StreakDays)

	r.notifyOutcome(result, unlocked, completed)
	r.observe(kind, xp, result, state, unlocked)

	return EventOutcome{
		Event:               event,
		XPEarned:            xp,
		Day:                 day,
		XP:                  result,
		State:               state,
		Unlocked:            unlocked,
		CompletedChallenges: completed,
	}, nil
}

// RecentEvents returns the newest audit-log entries.
func (r *Recorder) RecentEvents(limit int) ([]domain.ActivityEvent, error) {
	return r.db.ListEvents(limit)
}

func (r *Recorder) xpFor(kind domain.EventKind, amount int) (int, error) {
	switch kind {
	case domain.EventMessage:
		return r.rates.Message * amount, nil
	case domain.EventPractice:
		return r.rates.PracticeMinute * amount, nil
	case domain.EventQuiz:
		return r.rates.Quiz * amount, nil
	default:
		return 0, domain.ErrUnknownEventKind
	}
}

// advanceChallenges feeds the event into active weekly challenges and
// grants XP for any it completes. Challenge errors never fail the
// event; they are logged and skipped.
func (r *Recorder) advanceChallenges(ctx context.Context, kind domain.EventKind, amount, streakDays int) []domain.Challenge {
	if r.challenges == nil {
		return nil
	}

	var completed []domain.Challenge
	switch kind {
	case domain.EventMessage:
		completed = r.challengeProgress(domain.ChallengeMessages, amount)
	case domain.EventPractice:
		completed = r.challengeProgress(domain.ChallengePractice, amount)
	}
	completed = append(completed, r.streakChallenges(streakDays)...)

	for _, c := range completed {
		if _, err := r.engine.AddXP(ctx, c.XPReward); err != nil {
			log.Printf("[progress] challenge reward %s: %v", c.ID, err)
		}
	}
	return completed
}

func (r *Recorder) challengeProgress(t domain.ChallengeType, delta int) []domain.Challenge {
	completed, err := r.challenges.RecordProgress(t, delta)
	if err != nil {
		log.Printf("[progress] challenge progress %s: %v", t, err)
		return nil
	}
	return completed
}

func (r *Recorder) streakChallenges(streakDays int) []domain.Challenge {
	completed, err := r.challenges.RecordStreak(streakDays)
	if err != nil {
		log.Printf("[progress] streak challenges: %v", err)
		return nil
	}
	return completed
}

// notifyOutcome creates user-facing notifications, subject to policy.
func (r *Recorder) notifyOutcome(result domain.XPResult, unlocked []domain.Achievement, completed []domain.Challenge) {
	if r.notify == nil {
		return
	}

	if result.LeveledUp {
		r.create(domain.Notification{
			Type:  domain.NotifyLevelUp,
			Title: "Level up!",
			Body:  fmt.Sprintf("You reached level %d — %s.", result.Tier.Level, result.Tier.Name),
		})
	}
	for _, a := range unlocked {
		r.create(domain.Notification{
			Type:  domain.NotifyAchievement,
			Title: "Achievement unlocked!",
			Body:  fmt.Sprintf("%s — %s", a.Title, a.Description),
		})
	}
	for _, c := range completed {
		r.create(domain.Notification{
			Type:  domain.NotifyChallenge,
			Title: "Challenge complete!",
			Body:  c.Description,
		})
	}
}

func (r *Recorder) create(n domain.Notification) {
	n.CreatedAt = time.Now()
	if _, err := r.notify.Create(n); err != nil {
		log.Printf("[progress] create notification: %v", err)
	}
}

func (r *Recorder) observe(kind domain.EventKind, xp int, result domain.XPResult, state domain.PlayerState, unlocked []domain.Achievement) {
	metrics.EventsRecorded.WithLabelValues(string(kind)).Inc()
	metrics.XPAwarded.Add(float64(xp))
	if result.LeveledUp {
		metrics.LevelUps.Inc()
	}
	for _, a := range unlocked {
		metrics.AchievementsUnlocked.WithLabelValues(string(a.Category)).Inc()
		metrics.XPAwarded.Add(float64(a.XPReward))
	}
	metrics.CurrentLevel.Set(float64(state.Level))
	metrics.StreakDays.Set(float64(state.StreakDays))
}
