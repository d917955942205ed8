package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatheredNames(t *testing.T) map[string]bool {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}

func TestTrackerMetrics_Registered(t *testing.T) {
	// promauto registers with the default registry automatically; touch
	// each metric so vectors materialize at least one child.
	EventsRegistered.WithLabelValues("habit_completed").Inc()
	MissionsCompleted.Inc()
	AchievementsUnlocked.Inc()
	XPAwarded.WithLabelValues("MISSION_COMPLETED").Add(50)
	LevelCurrent.Set(1)
	MoodStreakDays.Set(3)
	PersistenceFailures.WithLabelValues("stats").Inc()

	names := gatheredNames(t)
	expected := []string{
		"wellspring_events_registered_total",
		"wellspring_missions_completed_total",
		"wellspring_achievements_unlocked_total",
		"wellspring_xp_awarded_total",
		"wellspring_level_current",
		"wellspring_mood_streak_days",
		"wellspring_persistence_failures_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("metric %q not found", name)
		}
	}
}

func TestAllMetricsNamespaced(t *testing.T) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}

	count := 0
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "wellspring_") {
			count++
		}
	}
	if count < 7 {
		t.Errorf("expected at least 7 wellspring_ metric families, got %d", count)
	}
}
