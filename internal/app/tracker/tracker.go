// Package tracker implements the Wellspring milestone engine: usage
// counters, the regenerated mission catalog with persisted progress, and
// the achievement unlock engine. Everything hangs off RegisterEvent —
// user actions update the counters, missions and achievement triggers
// are recomputed, and subscribers are notified of completions.
package tracker

import (
	"sync"

	"github.com/wellspring-app/wellspring/internal/domain"
	"github.com/wellspring-app/wellspring/internal/infra/metrics"
)

// Tracker wires the stats aggregator, mission engine, and achievement
// engine together behind a single mutex, serializing event registration
// the way the original single-threaded event loop did.
type Tracker struct {
	mu           sync.Mutex
	stats        *StatsService
	missions     *MissionService
	achievements *AchievementService
	dispatcher   Dispatcher
}

// New creates a tracker on the given persistence and clock ports.
// Call Init before use.
func New(kv domain.KV, clock domain.Clock) *Tracker {
	return &Tracker{
		stats:        NewStatsService(kv, clock),
		missions:     NewMissionService(kv, clock),
		achievements: NewAchievementService(kv, clock),
	}
}

// Init loads persisted state, rebuilds the mission catalog, and
// reconciles mission progress against the current stats.
func (t *Tracker) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.stats.Load(); err != nil {
		return err
	}
	if err := t.achievements.Load(); err != nil {
		return err
	}
	if err := t.missions.Init(); err != nil {
		return err
	}

	// Catch up after threshold-table changes: recompute against current
	// stats so fresh catalog entries don't sit at 0 until the next event.
	t.missions.UpdateFromStats(t.stats.Stats())
	return nil
}

// Subscribe registers a listener for tracker updates. Wire at startup.
func (t *Tracker) Subscribe(fn Subscriber) {
	t.dispatcher.Subscribe(fn)
}

// RegisterEvent records a user action: the matching counter is bumped
// and persisted, mission progress is recomputed, achievement triggers
// run, and subscribers are notified. Returns the resulting update.
func (t *Tracker) RegisterEvent(event domain.EventType) (Update, error) {
	t.mu.Lock()
	stats, err := t.stats.RegisterEvent(event)
	if err != nil {
		t.mu.Unlock()
		return Update{}, err
	}

	update := Update{
		Event:                event,
		Stats:                stats,
		CompletedMissions:    t.missions.UpdateFromStats(stats),
		UnlockedAchievements: t.achievements.CheckTriggers(stats),
	}
	t.mu.Unlock()

	metrics.EventsRegistered.WithLabelValues(string(event)).Inc()
	t.dispatcher.publish(update)
	return update, nil
}

// ─── Read Views ─────────────────────────────────────────────────────────────

// Stats returns the current counter snapshot.
func (t *Tracker) Stats() domain.GamificationStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats.Stats()
}

// Missions returns the full mission list in catalog order.
func (t *Tracker) Missions() []domain.Mission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.missions.Missions()
}

// ActiveMissions returns the nearest incomplete missions (up to 10).
func (t *Tracker) ActiveMissions() []domain.Mission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.missions.Active()
}

// CompletedMissions returns completed missions, newest first.
func (t *Tracker) CompletedMissions() []domain.Mission {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.missions.Completed()
}

// Achievements returns the sorted achievement list.
func (t *Tracker) Achievements() []domain.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.List()
}

// LastError surfaces the most recent persistence failure from any
// engine, or "" when the last writes succeeded.
func (t *Tracker) LastError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, msg := range []string{
		t.stats.LastError(),
		t.missions.LastError(),
		t.achievements.LastError(),
	} {
		if msg != "" {
			return msg
		}
	}
	return ""
}

// ─── Achievement CRUD passthroughs ──────────────────────────────────────────
// These mutate the achievement list directly (user-defined badges); the
// trigger engine is untouched.

// SeedAchievements inserts pre-authored badges if absent.
func (t *Tracker) SeedAchievements(seeds []domain.Achievement) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.achievements.Seed(seeds)
}

// AddAchievement validates and inserts a user-defined achievement.
func (t *Tracker) AddAchievement(a domain.Achievement) (domain.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.Add(a)
}

// UpdateAchievement applies a partial patch by id.
func (t *Tracker) UpdateAchievement(id string, patch domain.AchievementPatch) (domain.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.Update(id, patch)
}

// DeleteAchievement removes an achievement by id.
func (t *Tracker) DeleteAchievement(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.Delete(id)
}

// UnlockAchievement forces an achievement to 100% and stamps it.
func (t *Tracker) UnlockAchievement(id string) (domain.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.Unlock(id)
}

// LockAchievement clears an achievement's unlock stamp.
func (t *Tracker) LockAchievement(id string) (domain.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.Lock(id)
}

// SetAchievementProgress sets an achievement's progress (clamped).
func (t *Tracker) SetAchievementProgress(id string, progress int) (domain.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.SetProgress(id, progress)
}

// IncrementAchievementProgress adds a clamped delta to an achievement.
func (t *Tracker) IncrementAchievementProgress(id string, delta int) (domain.Achievement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.achievements.IncrementProgress(id, delta)
}
