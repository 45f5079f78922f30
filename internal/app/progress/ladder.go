// Package progress implements the Lingua progress and gamification
// engine: level ladder, XP and streak state, achievement evaluation,
// the daily activity ledger, and derived rollups.
package progress

import (
	"math"

	"github.com/lingua-network/lingua/internal/domain"
)

// topTierSpanXP is the display span for the unbounded top tier.
const topTierSpanXP = 10000

// Ladder is the fixed ordered tier table with its classification
// function. The table is data, not code — replace the tiers without
// touching the algorithm.
type Ladder struct {
	tiers []domain.LevelTier
}

// NewLadder builds a ladder from tiers sorted ascending by level with
// strictly increasing MinXP. Each tier's MaxXP is derived from the next
// tier's MinXP; the last tier stays unbounded.
func NewLadder(tiers []domain.LevelTier) Ladder {
	filled := make([]domain.LevelTier, len(tiers))
	copy(filled, tiers)
	for i := range filled {
		if i+1 < len(filled) {
			filled[i].MaxXP = filled[i+1].MinXP
		} else {
			filled[i].MaxXP = 0 // unbounded
		}
	}
	return Ladder{tiers: filled}
}

// DefaultLadder returns the ten shipping tiers.
func DefaultLadder() Ladder {
	return NewLadder([]domain.LevelTier{
		{Level: 1, Name: "Beginner", MinXP: 0},
		{Level: 2, Name: "Novice", MinXP: 100},
		{Level: 3, Name: "Apprentice", MinXP: 250},
		{Level: 4, Name: "Student", MinXP: 450},
		{Level: 5, Name: "Conversationalist", MinXP: 700},
		{Level: 6, Name: "Speaker", MinXP: 1000},
		{Level: 7, Name: "Communicator", MinXP: 1500},
		{Level: 8, Name: "Expert", MinXP: 2100},
		{Level: 9, Name: "Master", MinXP: 3000},
		{Level: 10, Name: "Legend", MinXP: 4200},
	})
}

// Tiers returns the full tier table.
func (l Ladder) Tiers() []domain.LevelTier {
	out := make([]domain.LevelTier, len(l.tiers))
	copy(out, l.tiers)
	return out
}

// Classify returns the tier with the greatest MinXP not exceeding
// totalXP. Callers guarantee totalXP >= 0.
func (l Ladder) Classify(totalXP int) domain.LevelTier {
	tier := l.tiers[0]
	for _, t := range l.tiers {
		if t.MinXP <= totalXP {
			tier = t
		} else {
			break
		}
	}
	return tier
}

// Progress returns position within the tier holding totalXP.
// The unbounded top tier reports a fixed max and 100 percent.
func (l Ladder) Progress(totalXP int) domain.TierProgress {
	tier := l.Classify(totalXP)
	current := totalXP - tier.MinXP

	if tier.Unbounded() {
		return domain.TierProgress{Current: current, Max: topTierSpanXP, Percentage: 100}
	}

	max := tier.MaxXP - tier.MinXP
	pct := int(math.Round(float64(current) / float64(max) * 100))
	return domain.TierProgress{Current: current, Max: max, Percentage: pct}
}
