// Package metrics provides Prometheus metrics for Wellspring.
// Counters and gauges for the tracker engine: events, missions,
// achievements, XP, and persistence health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Events ─────────────────────────────────────────────────────────────────

// EventsRegistered tracks registered tracker events by type.
var EventsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wellspring",
	Name:      "events_registered_total",
	Help:      "Total tracker events registered, by event type.",
}, []string{"type"})

// ─── Missions ───────────────────────────────────────────────────────────────

// MissionsCompleted tracks missions that crossed 100% progress.
var MissionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "wellspring",
	Name:      "missions_completed_total",
	Help:      "Total missions completed.",
})

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementsUnlocked tracks achievements that crossed into unlocked state.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "wellspring",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})

// ─── XP / Level ─────────────────────────────────────────────────────────────

// XPAwarded tracks XP granted by source.
var XPAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wellspring",
	Name:      "xp_awarded_total",
	Help:      "Total XP awarded, by source.",
}, []string{"source"})

// LevelCurrent tracks the user's current level.
var LevelCurrent = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "wellspring",
	Name:      "level_current",
	Help:      "Current user level.",
})

// ─── Streak ─────────────────────────────────────────────────────────────────

// MoodStreakDays tracks the current consecutive-day mood streak.
var MoodStreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "wellspring",
	Name:      "mood_streak_days",
	Help:      "Current consecutive-day mood logging streak.",
})

// ─── Persistence ────────────────────────────────────────────────────────────

// PersistenceFailures tracks storage write failures by engine.
// The engines keep their in-memory state on failure, so a rising counter
// means local state and persisted state may have diverged.
var PersistenceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "wellspring",
	Name:      "persistence_failures_total",
	Help:      "Total storage write failures, by engine.",
}, []string{"engine"})
