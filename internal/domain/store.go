package domain

import "context"

// Store is the persistence backend the engine writes through.
// The engine owns only the schema of what it stores — two logical
// records, keyed "gamification_state" and "daily_progress" — and
// treats the backing technology as a collaborator.
type Store interface {
	// Get returns the value for key, reporting absence via ok=false.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes the value for key, creating it if absent.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Persisted record keys.
const (
	KeyPlayerState   = "gamification_state"
	KeyDailyProgress = "daily_progress"
)
