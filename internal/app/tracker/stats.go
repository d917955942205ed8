package tracker

import (
	"encoding/json"
	"log"
	"time"

	"github.com/wellspring-app/wellspring/internal/domain"
	"github.com/wellspring-app/wellspring/internal/infra/metrics"
)

// statsKey is the fixed storage key for the stats record.
const statsKey = "tracker_stats"

// StatsService owns the GamificationStats record. RegisterEvent is the
// only mutation path — there is no setter.
// Persistence is best-effort: a failed write is logged and recorded, and
// the in-memory state keeps the update (no rollback).
type StatsService struct {
	kv      domain.KV
	clock   domain.Clock
	stats   domain.GamificationStats
	lastErr string
}

// NewStatsService creates a stats service on the given ports.
func NewStatsService(kv domain.KV, clock domain.Clock) *StatsService {
	return &StatsService{kv: kv, clock: clock}
}

// Load reads the persisted stats record. A missing or corrupt record
// degrades to all-zero defaults. The streak gauge is restored from the
// loaded record so restarts don't report 0 until the next mood event.
func (s *StatsService) Load() error {
	raw, err := s.kv.Get(statsKey)
	if err != nil {
		return err
	}

	s.stats = domain.GamificationStats{}
	if raw != "" {
		var stats domain.GamificationStats
		if err := json.Unmarshal([]byte(raw), &stats); err != nil {
			log.Printf("[tracker] corrupt stats record, starting fresh: %v", err)
		} else {
			s.stats = stats
		}
	}

	metrics.MoodStreakDays.Set(float64(s.stats.MoodStreak))
	return nil
}

// Stats returns the current counter snapshot.
func (s *StatsService) Stats() domain.GamificationStats {
	return s.stats
}

// RegisterEvent increments the counter matching the event type and
// persists the full record before returning. Mood events additionally
// drive the consecutive-day streak.
func (s *StatsService) RegisterEvent(t domain.EventType) (domain.GamificationStats, error) {
	switch t {
	case domain.EventMoodLogged:
		s.registerMood(s.clock.Now())
	case domain.EventHabitCompleted:
		s.stats.HabitsCompleted++
	case domain.EventNoteCreated:
		s.stats.NotesCreated++
	case domain.EventReminderCompleted:
		s.stats.RemindersCompleted++
	case domain.EventWaterLogged:
		s.stats.WaterLogged++
	default:
		return s.stats, domain.ErrUnknownEventType
	}

	s.persist()
	return s.stats, nil
}

// registerMood bumps the mood count and updates the calendar-day streak:
// no prior date → 1; same day → unchanged; exactly yesterday → +1;
// any other gap (including dates more than a day in the future) → reset 1.
func (s *StatsService) registerMood(now time.Time) {
	s.stats.MoodCount++

	today := calendarDay(now)
	switch {
	case s.stats.LastMoodDate.IsZero():
		s.stats.MoodStreak = 1
	case today.Equal(calendarDay(s.stats.LastMoodDate)):
		// Same-day re-registration — streak unchanged
	case today.Equal(calendarDay(s.stats.LastMoodDate).AddDate(0, 0, 1)):
		s.stats.MoodStreak++
	default:
		s.stats.MoodStreak = 1
	}
	s.stats.LastMoodDate = now

	metrics.MoodStreakDays.Set(float64(s.stats.MoodStreak))
}

// LastError returns the most recent persistence failure message, or "".
func (s *StatsService) LastError() string {
	return s.lastErr
}

// persist writes the full stats record. Failure is caught and logged;
// the in-memory update stands.
func (s *StatsService) persist() {
	raw, err := json.Marshal(s.stats)
	if err != nil {
		// Stats is a flat struct — this cannot realistically fail.
		log.Printf("[tracker] marshal stats: %v", err)
		s.lastErr = "failed to save stats"
		return
	}
	if err := s.kv.Set(statsKey, string(raw)); err != nil {
		log.Printf("[tracker] save stats: %v", err)
		s.lastErr = "failed to save stats"
		metrics.PersistenceFailures.WithLabelValues("stats").Inc()
		return
	}
	s.lastErr = ""
}

// calendarDay strips the time-of-day, keeping the date in t's location.
// Streak comparisons are calendar-day based, not 24-hour based.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
