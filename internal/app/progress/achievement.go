package progress

import "github.com/lingua-network/lingua/internal/domain"

// The achievement catalog is static. Evaluation tests every locked
// entry's category predicate against the player state and aggregate
// stats; matches unlock in catalog order.

// Catalog returns the full shipping achievement catalog.
func Catalog() []domain.Achievement {
	return []domain.Achievement{
		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "first-streak", Title: "On a Roll",
			Description: "Practice three days in a row.",
			Category:    domain.CatStreak, Requirement: 3, XPReward: 50,
		},
		{
			ID: "week-streak", Title: "Week Warrior",
			Description: "Practice seven days in a row.",
			Category:    domain.CatStreak, Requirement: 7, XPReward: 150,
		},
		{
			ID: "month-streak", Title: "Unstoppable",
			Description: "Practice thirty days in a row.",
			Category:    domain.CatStreak, Requirement: 30, XPReward: 500,
		},

		// ── Conversation ───────────────────────────────────────────────
		{
			ID: "first-words", Title: "First Words",
			Description: "Send your first message.",
			Category:    domain.CatConversation, Requirement: 1, XPReward: 25,
		},
		{
			ID: "chatterbox", Title: "Chatterbox",
			Description: "Send one hundred messages.",
			Category:    domain.CatConversation, Requirement: 100, XPReward: 200,
		},
		{
			ID: "deep-talker", Title: "Deep Talker",
			Description: "Send five hundred messages.",
			Category:    domain.CatConversation, Requirement: 500, XPReward: 600,
		},

		// ── Practice ───────────────────────────────────────────────────
		{
			ID: "quick-study", Title: "Quick Study",
			Description: "Practice for a total of one hour.",
			Category:    domain.CatPractice, Requirement: 60, XPReward: 100,
		},
		{
			ID: "dedicated", Title: "Dedicated",
			Description: "Practice for a total of ten hours.",
			Category:    domain.CatPractice, Requirement: 600, XPReward: 400,
		},
		{
			ID: "scholar", Title: "Scholar",
			Description: "Practice for a total of fifty hours.",
			Category:    domain.CatPractice, Requirement: 3000, XPReward: 1000,
		},

		// ── Milestones ─────────────────────────────────────────────────
		{
			ID: "rising-star", Title: "Rising Star",
			Description: "Reach level 5.",
			Category:    domain.CatMilestone, Requirement: 5, XPReward: 250,
		},
		{
			ID: "expert-badge", Title: "Seasoned Expert",
			Description: "Reach level 8.",
			Category:    domain.CatMilestone, Requirement: 8, XPReward: 750,
		},
		{
			ID: "legend-badge", Title: "Living Legend",
			Description: "Reach level 10.",
			Category:    domain.CatMilestone, Requirement: 10, XPReward: 2000,
		},
	}
}

// met tests an achievement's category predicate against current values.
func met(a domain.Achievement, state domain.PlayerState, stats domain.ActivityStats) bool {
	switch a.Category {
	case domain.CatStreak:
		return state.StreakDays >= a.Requirement
	case domain.CatConversation:
		return stats.MessagesTotal >= a.Requirement
	case domain.CatPractice:
		return stats.MinutesTotal >= a.Requirement
	case domain.CatMilestone:
		return state.Level >= a.Requirement
	default:
		return false
	}
}
