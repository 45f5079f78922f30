package progress

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/lingua-network/lingua/internal/domain"
	"github.com/lingua-network/lingua/internal/infra/sqlite"
)

// ChallengeService manages weekly practice challenges.
// Three challenges are generated per ISO week, expiring the following
// Monday at 00:00 UTC.
type ChallengeService struct {
	db *sqlite.DB
}

// NewChallengeService creates a challenge service.
func NewChallengeService(db *sqlite.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

// challengePool is the set of possible challenge templates.
var challengePool = []domain.ChallengeTemplate{
	{Type: domain.ChallengeMessages, Target: 25, Description: "Send 25 messages this week", XPReward: 150},
	{Type: domain.ChallengeMessages, Target: 75, Description: "Send 75 messages this week", XPReward: 350},
	{Type: domain.ChallengePractice, Target: 60, Description: "Practice for 60 minutes this week", XPReward: 200},
	{Type: domain.ChallengePractice, Target: 180, Description: "Practice for 3 hours this week", XPReward: 450},
	{Type: domain.ChallengeStreak, Target: 3, Description: "Keep a 3-day streak alive", XPReward: 120},
	{Type: domain.ChallengeStreak, Target: 7, Description: "Keep a 7-day streak alive", XPReward: 300},
}

// GenerateWeekly creates 3 random challenges for the current week.
// If active challenges already exist, the existing ones are returned.
func (c *ChallengeService) GenerateWeekly() ([]domain.Challenge, error) {
	active, err := c.db.ListActiveChallenges(time.Now())
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		return active, nil
	}
	return c.GenerateWeeklyAt(time.Now())
}

// GenerateWeeklyAt creates 3 random challenges expiring at the next
// Monday after now. Accepts a time parameter for testability.
func (c *ChallengeService) GenerateWeeklyAt(now time.Time) ([]domain.Challenge, error) {
	expiry := nextMonday(now)
	selected := pickTemplates(challengePool, 3, now.UnixNano())

	var challenges []domain.Challenge
	for _, tmpl := range selected {
		ch := domain.Challenge{
			ID:          uuid.NewString(),
			Type:        tmpl.Type,
			Description: tmpl.Description,
			Target:      tmpl.Target,
			XPReward:    tmpl.XPReward,
			ExpiresAt:   expiry,
		}
		if err := c.db.InsertChallenge(ch); err != nil {
			return nil, fmt.Errorf("insert challenge: %w", err)
		}
		challenges = append(challenges, ch)
	}
	return challenges, nil
}

// Active returns current non-expired, non-completed challenges.
func (c *ChallengeService) Active() ([]domain.Challenge, error) {
	return c.db.ListActiveChallenges(time.Now())
}

// RecordProgress increments progress for challenges of the given type.
// Returns any challenges completed by this progress.
func (c *ChallengeService) RecordProgress(t domain.ChallengeType, delta int) ([]domain.Challenge, error) {
	active, err := c.db.ListActiveChallenges(time.Now())
	if err != nil {
		return nil, err
	}

	var completed []domain.Challenge
	for _, ch := range active {
		if ch.Type != t {
			continue
		}
		updated, err := c.db.UpdateChallengeProgress(ch.ID, delta)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, domain.ErrChallengeNotFound
		}
		if updated.Progress >= updated.Target && !updated.Completed {
			if err := c.db.CompleteChallenge(ch.ID); err != nil {
				return nil, err
			}
			updated.Completed = true
			completed = append(completed, *updated)
		}
	}
	return completed, nil
}

// RecordStreak raises streak-type challenge progress to the current
// streak length. Returns any challenges completed by this update.
func (c *ChallengeService) RecordStreak(streakDays int) ([]domain.Challenge, error) {
	active, err := c.db.ListActiveChallenges(time.Now())
	if err != nil {
		return nil, err
	}

	var completed []domain.Challenge
	for _, ch := range active {
		if ch.Type != domain.ChallengeStreak || streakDays <= ch.Progress {
			continue
		}
		updated, err := c.db.UpdateChallengeProgress(ch.ID, streakDays-ch.Progress)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, domain.ErrChallengeNotFound
		}
		if updated.Progress >= updated.Target && !updated.Completed {
			if err := c.db.CompleteChallenge(ch.ID); err != nil {
				return nil, err
			}
			updated.Completed = true
			completed = append(completed, *updated)
		}
	}
	return completed, nil
}

// CleanupExpired removes unfinished challenges that expired before now.
func (c *ChallengeService) CleanupExpired() (int64, error) {
	return c.db.DeleteExpiredChallenges(time.Now())
}

// nextMonday returns the next Monday at 00:00 UTC after the given time.
func nextMonday(t time.Time) time.Time {
	t = t.UTC().Truncate(24 * time.Hour)
	daysUntilMonday := (8 - int(t.Weekday())) % 7
	if daysUntilMonday == 0 {
		daysUntilMonday = 7
	}
	return t.AddDate(0, 0, daysUntilMonday)
}

// pickTemplates selects n random templates, preferring unique types.
func pickTemplates(pool []domain.ChallengeTemplate, n int, seed int64) []domain.ChallengeTemplate {
	r := rand.New(rand.NewSource(seed))

	shuffled := make([]domain.ChallengeTemplate, len(pool))
	copy(shuffled, pool)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	seen := make(map[domain.ChallengeType]bool)
	var result []domain.ChallengeTemplate
	for _, tmpl := range shuffled {
		if len(result) >= n {
			break
		}
		if !seen[tmpl.Type] {
			seen[tmpl.Type] = true
			result = append(result, tmpl)
		}
	}
	for _, tmpl := range shuffled {
		if len(result) >= n {
			break
		}
		dup := false
		for _, picked := range result {
			if picked.Type == tmpl.Type && picked.Target == tmpl.Target {
				dup = true
				break
			}
		}
		if !dup {
			result = append(result, tmpl)
		}
	}
	return result
}
