package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/lingua-network/lingua/internal/domain"
)

// Engine owns the persisted gamification state and daily ledger.
// Every mutating operation is a read-modify-write against the backing
// store, serialized per logical key so concurrent calls cannot lose
// updates. Reads fail open to canonical defaults; write failures are
// returned to the caller.
type Engine struct {
	store   domain.Store
	ladder  Ladder
	catalog []domain.Achievement

	stateMu  sync.Mutex // serializes gamification_state writers
	ledgerMu sync.Mutex // serializes daily_progress writers
}

// NewEngine creates an engine with the default ladder and catalog.
func NewEngine(store domain.Store) *Engine {
	return &Engine{
		store:   store,
		ladder:  DefaultLadder(),
		catalog: Catalog(),
	}
}

// Ladder returns the engine's level ladder.
func (e *Engine) Ladder() Ladder { return e.ladder }

// Catalog returns the achievement catalog.
func (e *Engine) Catalog() []domain.Achievement { return e.catalog }

// ─── State Operations ───────────────────────────────────────────────────────

// State returns the current player state, creating the canonical
// default lazily when nothing is persisted yet.
func (e *Engine) State(ctx context.Context) domain.PlayerState {
	return e.loadState(ctx)
}

// AddXP adds experience points, reclassifies the level, and persists.
// amount must be non-negative.
func (e *Engine) AddXP(ctx context.Context, amount int) (domain.XPResult, error) {
	if amount < 0 {
		return domain.XPResult{}, domain.ErrNegativeXP
	}

	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	state := e.loadState(ctx)
	oldTier := e.ladder.Classify(state.TotalXP)

	state = e.applyXP(state, amount)
	newTier := e.ladder.Classify(state.TotalXP)

	if err := e.saveState(ctx, state); err != nil {
		return domain.XPResult{}, err
	}

	return domain.XPResult{
		TotalXP:   state.TotalXP,
		LeveledUp: newTier.Level > oldTier.Level,
		Tier:      newTier,
	}, nil
}

// RecordActivity advances the daily-active streak for the given
// calendar date key and persists. Same-day calls are idempotent; a
// consecutive day extends the streak; any other gap (including clock
// skew) resets it to one.
func (e *Engine) RecordActivity(ctx context.Context, today string) (domain.PlayerState, error) {
	if _, err := domain.ParseDay(today); err != nil {
		return domain.PlayerState{}, err
	}

	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	state := e.loadState(ctx)

	switch last := state.LastActiveDate; {
	case last == "":
		state.StreakDays = 1
	case last == today:
		return state, nil // already counted
	default:
		diff, err := domain.DayDiff(today, last)
		if err != nil || diff != 1 {
			state.StreakDays = 1
		} else {
			state.StreakDays++
		}
	}
	state.LastActiveDate = today

	if err := e.saveState(ctx, state); err != nil {
		return domain.PlayerState{}, err
	}
	return state, nil
}

// EvaluateAchievements tests every locked catalog entry against the
// current state and the supplied aggregate stats. Matches unlock in
// catalog order and their XP rewards are granted within the same state
// write. A second call with unchanged inputs unlocks nothing.
func (e *Engine) EvaluateAchievements(ctx context.Context, stats domain.ActivityStats) ([]domain.Achievement, error) {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()

	state := e.loadState(ctx)

	var unlocked []domain.Achievement
	reward := 0
	for _, a := range e.catalog {
		if state.HasAchievement(a.ID) {
			continue
		}
		if met(a, state, stats) {
			state.UnlockedAchievements = append(state.UnlockedAchievements, a.ID)
			unlocked = append(unlocked, a)
			reward += a.XPReward
		}
	}
	if len(unlocked) == 0 {
		return nil, nil
	}

	state = e.applyXP(state, reward)
	if err := e.saveState(ctx, state); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// ClearAll wipes both persisted records. Used by reset flows and tests.
func (e *Engine) ClearAll(ctx context.Context) error {
	e.stateMu.Lock()
	defer e.stateMu.Unlock()
	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()

	if err := e.store.Remove(ctx, domain.KeyPlayerState); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStateWrite, err)
	}
	if err := e.store.Remove(ctx, domain.KeyDailyProgress); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}

// ─── Internals ──────────────────────────────────────────────────────────────

// applyXP adds amount to the total and restores the level invariants.
func (e *Engine) applyXP(state domain.PlayerState, amount int) domain.PlayerState {
	state.TotalXP += amount
	tier := e.ladder.Classify(state.TotalXP)
	state.Level = tier.Level
	state.CurrentXP = state.TotalXP - tier.MinXP
	return state
}

// loadState reads the persisted player state, failing open to the
// canonical default on read errors or corrupt payloads.
func (e *Engine) loadState(ctx context.Context) domain.PlayerState {
	value, ok, err := e.store.Get(ctx, domain.KeyPlayerState)
	if err != nil {
		log.Printf("[progress] read state: %v (using defaults)", err)
		return domain.DefaultPlayerState()
	}
	if !ok {
		return domain.DefaultPlayerState()
	}

	var state domain.PlayerState
	if err := json.Unmarshal([]byte(value), &state); err != nil {
		log.Printf("[progress] decode state: %v (using defaults)", err)
		return domain.DefaultPlayerState()
	}
	return state
}

func (e *Engine) saveState(ctx context.Context, state domain.PlayerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := e.store.Set(ctx, domain.KeyPlayerState, string(data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStateWrite, err)
	}
	return nil
}
