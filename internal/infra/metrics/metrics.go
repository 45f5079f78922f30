// Package metrics provides Prometheus metrics for the progress engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activity ───────────────────────────────────────────────────────────────

// EventsRecorded tracks raw activity events by kind.
var EventsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lingua",
	Name:      "activity_events_total",
	Help:      "Total recorded activity events.",
}, []string{"kind"})

// XPAwarded tracks total experience points granted.
var XPAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Name:      "xp_awarded_total",
	Help:      "Total XP granted, including achievement rewards.",
})

// ─── Progression ────────────────────────────────────────────────────────────

// LevelUps tracks level-up transitions.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "lingua",
	Name:      "level_ups_total",
	Help:      "Total level-up transitions.",
})

// AchievementsUnlocked tracks unlocks by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "lingua",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"category"})

// CurrentLevel reports the player's current level.
var CurrentLevel = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "lingua",
	Name:      "current_level",
	Help:      "Current player level.",
})

// StreakDays reports the current daily-active streak length.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "lingua",
	Name:      "streak_days",
	Help:      "Current daily-active streak in days.",
})
