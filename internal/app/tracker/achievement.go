package tracker

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wellspring-app/wellspring/internal/domain"
	"github.com/wellspring-app/wellspring/internal/infra/metrics"
)

// achievementsKey is the fixed storage key for the achievement list.
const achievementsKey = "tracker_achievements"

// AchievementService manages the flat achievement list: user CRUD plus
// the stat-driven trigger engine. The list is re-sorted on every
// mutation — unlocked first (newest unlock on top), then locked ones
// alphabetically.
type AchievementService struct {
	kv      domain.KV
	clock   domain.Clock
	list    []domain.Achievement
	lastErr string
}

// NewAchievementService creates an achievement service on the given ports.
func NewAchievementService(kv domain.KV, clock domain.Clock) *AchievementService {
	return &AchievementService{kv: kv, clock: clock}
}

// Load reads the persisted achievement list. A missing or corrupt record
// degrades to an empty list.
func (a *AchievementService) Load() error {
	raw, err := a.kv.Get(achievementsKey)
	if err != nil {
		return err
	}
	if raw == "" {
		a.list = nil
		return nil
	}

	var list []domain.Achievement
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("[tracker] corrupt achievement list, starting empty: %v", err)
		a.list = nil
		return nil
	}
	a.list = list
	a.sortList()
	return nil
}

// List returns the sorted achievement list.
func (a *AchievementService) List() []domain.Achievement {
	out := make([]domain.Achievement, len(a.list))
	copy(out, a.list)
	return out
}

// Add validates and inserts a new achievement. The id is generated
// (random + creation timestamp); progress is clamped to [0,100]; a
// progress of 100 or more stamps the unlock time immediately.
func (a *AchievementService) Add(in domain.Achievement) (domain.Achievement, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Achievement{}, domain.ErrTitleRequired
	}
	if strings.TrimSpace(in.Description) == "" {
		return domain.Achievement{}, domain.ErrDescriptionRequired
	}
	if strings.TrimSpace(in.Icon) == "" {
		return domain.Achievement{}, domain.ErrIconRequired
	}

	now := a.clock.Now()
	in.ID = fmt.Sprintf("%s-%d", uuid.NewString(), now.UnixNano())
	in.Progress = domain.ClampProgress(in.Progress)
	if in.Progress >= 100 && in.UnlockedAt.IsZero() {
		in.UnlockedAt = now
	}

	a.list = append(a.list, in)
	a.sortList()
	a.persist()
	return in, nil
}

// Update applies a partial patch to the achievement with the given id.
// Progress is re-clamped; crossing 100 for the first time stamps the
// unlock time. An explicit UnlockedAt in the patch overrides the derived
// stamp.
func (a *AchievementService) Update(id string, patch domain.AchievementPatch) (domain.Achievement, error) {
	idx := a.indexOf(id)
	if idx < 0 {
		return domain.Achievement{}, domain.ErrAchievementNotFound
	}

	ach := &a.list[idx]
	if patch.Title != nil {
		ach.Title = *patch.Title
	}
	if patch.Description != nil {
		ach.Description = *patch.Description
	}
	if patch.Icon != nil {
		ach.Icon = *patch.Icon
	}
	if patch.Progress != nil {
		ach.Progress = domain.ClampProgress(*patch.Progress)
		if ach.Progress >= 100 && ach.UnlockedAt.IsZero() {
			ach.UnlockedAt = a.clock.Now()
		}
	}
	if patch.UnlockedAt != nil {
		ach.UnlockedAt = *patch.UnlockedAt
	}

	updated := *ach
	a.sortList()
	a.persist()
	return updated, nil
}

// Delete removes the achievement with the given id.
func (a *AchievementService) Delete(id string) error {
	idx := a.indexOf(id)
	if idx < 0 {
		return domain.ErrAchievementNotFound
	}
	a.list = append(a.list[:idx], a.list[idx+1:]...)
	a.persist()
	return nil
}

// SetProgress sets the achievement's progress (clamped).
func (a *AchievementService) SetProgress(id string, progress int) (domain.Achievement, error) {
	return a.Update(id, domain.AchievementPatch{Progress: &progress})
}

// IncrementProgress adds delta to the achievement's progress (clamped).
func (a *AchievementService) IncrementProgress(id string, delta int) (domain.Achievement, error) {
	idx := a.indexOf(id)
	if idx < 0 {
		return domain.Achievement{}, domain.ErrAchievementNotFound
	}
	progress := a.list[idx].Progress + delta
	return a.Update(id, domain.AchievementPatch{Progress: &progress})
}

// Unlock forces progress to 100 and stamps the unlock time.
func (a *AchievementService) Unlock(id string) (domain.Achievement, error) {
	progress := 100
	return a.Update(id, domain.AchievementPatch{Progress: &progress})
}

// Lock clears the unlock stamp, leaving progress untouched.
func (a *AchievementService) Lock(id string) (domain.Achievement, error) {
	idx := a.indexOf(id)
	if idx < 0 {
		return domain.Achievement{}, domain.ErrAchievementNotFound
	}
	a.list[idx].UnlockedAt = time.Time{}
	updated := a.list[idx]
	a.sortList()
	a.persist()
	return updated, nil
}

// Seed inserts pre-authored achievements (well-known ids, e.g. the
// single-shot starter badges) unless an entry with the same id already
// exists. Idempotent across restarts.
func (a *AchievementService) Seed(seeds []domain.Achievement) {
	added := false
	for _, seed := range seeds {
		if a.indexOf(seed.ID) >= 0 {
			continue
		}
		seed.Progress = domain.ClampProgress(seed.Progress)
		a.list = append(a.list, seed)
		added = true
	}
	if added {
		a.sortList()
		a.persist()
	}
}

// LastError returns the most recent persistence failure message, or "".
func (a *AchievementService) LastError() string {
	return a.lastErr
}

// ─── Trigger Engine ─────────────────────────────────────────────────────────
// Runs on every stats change. Idempotent: single-shot triggers unlock a
// seeded achievement at most once, tiered triggers existence-check by
// exact title before creating.

// singleShotTrigger unlocks a pre-seeded achievement by well-known id the
// first time its stat is non-zero. If the achievement was never seeded,
// nothing happens.
type singleShotTrigger struct {
	id      string
	statKey domain.StatKey
}

var singleShotTriggers = []singleShotTrigger{
	{"first_mood", domain.StatMoodCount},
	{"first_habit", domain.StatHabitsCompleted},
	{"first_note", domain.StatNotesCreated},
	{"first_reminder", domain.StatRemindersCompleted},
	{"first_water", domain.StatWaterLogged},
}

// tieredTrigger creates an already-unlocked achievement when the stat
// crosses a threshold. Its threshold table is authored independently from
// the mission catalog.
type tieredTrigger struct {
	statKey    domain.StatKey
	icon       string
	titleFmt   string // threshold substituted in
	descFmt    string
	thresholds []int
}

var tieredTriggers = []tieredTrigger{
	{
		statKey: domain.StatMoodCount, icon: "🌤️",
		titleFmt: "Mood Keeper %d", descFmt: "Logged %d moods.",
		thresholds: []int{10, 50, 100, 500},
	},
	{
		statKey: domain.StatMoodStreak, icon: "🔥",
		titleFmt: "%d-Day Mood Streak", descFmt: "Logged your mood %d days in a row.",
		thresholds: []int{7, 30, 100},
	},
	{
		statKey: domain.StatHabitsCompleted, icon: "✅",
		titleFmt: "Habit Hero %d", descFmt: "Completed %d habits.",
		thresholds: []int{10, 50, 200},
	},
	{
		statKey: domain.StatNotesCreated, icon: "📝",
		titleFmt: "Note Taker %d", descFmt: "Wrote %d notes.",
		thresholds: []int{10, 50, 200},
	},
	{
		statKey: domain.StatRemindersCompleted, icon: "⏰",
		titleFmt: "Task Tamer %d", descFmt: "Completed %d reminders.",
		thresholds: []int{10, 50, 200},
	},
	{
		statKey: domain.StatWaterLogged, icon: "💧",
		titleFmt: "Well Watered %d", descFmt: "Logged %d glasses of water.",
		thresholds: []int{25, 100, 500},
	},
}

// StarterAchievements returns the locked single-shot badges the trigger
// engine unlocks later. The daemon seeds these on first start.
func StarterAchievements() []domain.Achievement {
	return []domain.Achievement{
		{ID: "first_mood", Title: "First Mood", Description: "Log your first mood entry.", Icon: "🌱", UserID: domain.SystemUserID},
		{ID: "first_habit", Title: "First Habit", Description: "Complete a habit for the first time.", Icon: "🌱", UserID: domain.SystemUserID},
		{ID: "first_note", Title: "First Note", Description: "Write your first note.", Icon: "🌱", UserID: domain.SystemUserID},
		{ID: "first_reminder", Title: "First Reminder", Description: "Complete your first reminder.", Icon: "🌱", UserID: domain.SystemUserID},
		{ID: "first_water", Title: "First Sip", Description: "Log your first glass of water.", Icon: "🌱", UserID: domain.SystemUserID},
	}
}

// CheckTriggers evaluates all triggers against the stats snapshot and
// returns achievements newly unlocked or created by this call.
func (a *AchievementService) CheckTriggers(stats domain.GamificationStats) []domain.Achievement {
	var unlocked []domain.Achievement
	changed := false

	for _, t := range singleShotTriggers {
		if stats.Value(t.statKey) < 1 {
			continue
		}
		idx := a.indexOf(t.id)
		if idx < 0 || a.list[idx].Unlocked() {
			continue // not seeded, or already earned
		}
		a.list[idx].Progress = 100
		a.list[idx].UnlockedAt = a.clock.Now()
		unlocked = append(unlocked, a.list[idx])
		changed = true
	}

	for _, t := range tieredTriggers {
		value := stats.Value(t.statKey)
		for _, threshold := range t.thresholds {
			if value < threshold {
				break // thresholds ascend
			}
			title := fmt.Sprintf(t.titleFmt, threshold)
			if a.hasTitle(title) {
				continue
			}
			ach := domain.Achievement{
				ID:          fmt.Sprintf("%s-%d", uuid.NewString(), a.clock.Now().UnixNano()),
				Title:       title,
				Description: fmt.Sprintf(t.descFmt, threshold),
				Icon:        t.icon,
				Progress:    100,
				UnlockedAt:  a.clock.Now(),
				UserID:      domain.SystemUserID,
			}
			a.list = append(a.list, ach)
			unlocked = append(unlocked, ach)
			changed = true
		}
	}

	if changed {
		a.sortList()
		a.persist()
		metrics.AchievementsUnlocked.Add(float64(len(unlocked)))
	}
	return unlocked
}

// ─── Internals ──────────────────────────────────────────────────────────────

func (a *AchievementService) indexOf(id string) int {
	for i := range a.list {
		if a.list[i].ID == id {
			return i
		}
	}
	return -1
}

func (a *AchievementService) hasTitle(title string) bool {
	for i := range a.list {
		if a.list[i].Title == title {
			return true
		}
	}
	return false
}

// sortList orders unlocked achievements first (newest unlock on top),
// then locked ones alphabetically by title.
func (a *AchievementService) sortList() {
	sort.SliceStable(a.list, func(i, j int) bool {
		ai, aj := a.list[i], a.list[j]
		switch {
		case ai.Unlocked() && aj.Unlocked():
			return ai.UnlockedAt.After(aj.UnlockedAt)
		case ai.Unlocked() != aj.Unlocked():
			return ai.Unlocked()
		default:
			return ai.Title < aj.Title
		}
	})
}

// persist writes the full achievement list in one write.
func (a *AchievementService) persist() {
	raw, err := json.Marshal(a.list)
	if err != nil {
		log.Printf("[tracker] marshal achievements: %v", err)
		a.lastErr = "failed to save achievements"
		return
	}
	if err := a.kv.Set(achievementsKey, string(raw)); err != nil {
		log.Printf("[tracker] save achievements: %v", err)
		a.lastErr = "failed to save achievements"
		metrics.PersistenceFailures.WithLabelValues("achievements").Inc()
		return
	}
	a.lastErr = ""
}
