// Package domain holds the core Wellspring types.
// The tracker engine drives mood journaling, habit streaks, and the
// gamified mission/achievement system on top of a handful of counters.
// Design rule: the counters are the single source of truth — missions and
// achievements are views derived from them.
package domain

import "time"

// ─── Event Types ────────────────────────────────────────────────────────────

// EventType enumerates the user actions the tracker records.
// Registering an event is the only way the stats counters mutate.
type EventType string

const (
	EventMoodLogged        EventType = "mood_logged"
	EventHabitCompleted    EventType = "habit_completed"
	EventNoteCreated       EventType = "note_created"
	EventReminderCompleted EventType = "reminder_completed"
	EventWaterLogged       EventType = "water_logged"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventMoodLogged, EventHabitCompleted, EventNoteCreated,
		EventReminderCompleted, EventWaterLogged:
		return true
	}
	return false
}

// ─── Stats Types ────────────────────────────────────────────────────────────

// StatKey names the counter that drives a mission's progress.
type StatKey string

const (
	StatMoodCount          StatKey = "mood_count"
	StatMoodStreak         StatKey = "mood_streak"
	StatHabitsCompleted    StatKey = "habits_completed"
	StatNotesCreated       StatKey = "notes_created"
	StatRemindersCompleted StatKey = "reminders_completed"
	StatWaterLogged        StatKey = "water_logged"
)

// GamificationStats is the per-user counter record. All counters are
// non-negative and monotonically non-decreasing except MoodStreak, which
// resets to 1 when a calendar day is skipped.
type GamificationStats struct {
	MoodCount           int       `json:"mood_count"`
	MoodStreak          int       `json:"mood_streak"`
	LastMoodDate        time.Time `json:"last_mood_date"`
	HabitsCompleted     int       `json:"habits_completed"`
	NotesCreated        int       `json:"notes_created"`
	RemindersCompleted  int       `json:"reminders_completed"`
	WaterLogged         int       `json:"water_logged"`
}

// Value returns the counter named by key. The switch keeps stat lookup
// compile-time checked; unknown keys read as 0.
func (s GamificationStats) Value(key StatKey) int {
	switch key {
	case StatMoodCount:
		return s.MoodCount
	case StatMoodStreak:
		return s.MoodStreak
	case StatHabitsCompleted:
		return s.HabitsCompleted
	case StatNotesCreated:
		return s.NotesCreated
	case StatRemindersCompleted:
		return s.RemindersCompleted
	case StatWaterLogged:
		return s.WaterLogged
	}
	return 0
}

// ─── Mission Types ──────────────────────────────────────────────────────────

// Mission is one milestone definition plus its tracked progress.
// The id is deterministic ("{category}_{target}") and is the merge key
// between the regenerated catalog and persisted progress.
type Mission struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StatKey     StatKey   `json:"stat_key"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"` // 0–100, recomputed from stats
	RewardXP    int64     `json:"reward_xp"`
	CompletedAt time.Time `json:"completed_at"` // zero until first crossing of 100
}

// Completed reports whether the mission has ever reached 100%.
func (m Mission) Completed() bool {
	return !m.CompletedAt.IsZero()
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// SystemUserID tags achievements generated by the trigger engine rather
// than added by the user.
const SystemUserID = "system"

// Achievement is a user-facing unlockable badge.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Progress    int       `json:"progress"` // clamped to 0–100 on every write
	UnlockedAt  time.Time `json:"unlocked_at"`
	UserID      string    `json:"user_id"`
}

// Unlocked reports whether the achievement has been earned.
func (a Achievement) Unlocked() bool {
	return !a.UnlockedAt.IsZero()
}

// AchievementPatch carries partial-update fields. Nil pointers leave the
// field untouched; an explicit UnlockedAt overrides the derived stamp.
type AchievementPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Icon        *string    `json:"icon,omitempty"`
	Progress    *int       `json:"progress,omitempty"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ─── Journal Types ──────────────────────────────────────────────────────────

// JournalEntry is one mood journal record.
type JournalEntry struct {
	ID        int64     `json:"id"`
	Mood      string    `json:"mood"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Level / XP Types ───────────────────────────────────────────────────────

// UserLevel represents the user's current level and accumulated XP.
type UserLevel struct {
	Level     int   `json:"level"`
	CurrentXP int64 `json:"current_xp"`
}

// XPSource categorizes how XP was earned.
type XPSource string

const (
	XPMissionCompleted    XPSource = "MISSION_COMPLETED"
	XPAchievementUnlocked XPSource = "ACHIEVEMENT_UNLOCKED"
)

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes celebratory notifications.
type NotificationType string

const (
	NotifyMissionComplete NotificationType = "mission_complete"
	NotifyAchievement     NotificationType = "achievement"
	NotifyLevelUp         NotificationType = "level_up"
)

// Notification is a user-facing celebratory message.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often celebratory notifications fire.
// A MaxPerDay of 0 disables notifications entirely.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy returns the shipped policy: a handful per day,
// nothing overnight.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  5,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}
