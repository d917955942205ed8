package tracker

import (
	"encoding/json"
	"log"
	"math"
	"sort"

	"github.com/wellspring-app/wellspring/internal/domain"
	"github.com/wellspring-app/wellspring/internal/infra/metrics"
)

// missionsKey is the fixed storage key for the mission list.
const missionsKey = "tracker_missions"

// activeMissionCap bounds the "active missions" view.
const activeMissionCap = 10

// MissionService merges the regenerated milestone catalog with persisted
// progress and recomputes percentage progress from the stats snapshot.
// The catalog is the source of truth for definitions; persisted state is
// the source of truth for progress and completion stamps.
type MissionService struct {
	kv       domain.KV
	clock    domain.Clock
	missions []domain.Mission
	lastErr  string
}

// NewMissionService creates a mission service on the given ports.
func NewMissionService(kv domain.KV, clock domain.Clock) *MissionService {
	return &MissionService{kv: kv, clock: clock}
}

// Init rebuilds the catalog and carries forward persisted progress by id.
// Persisted missions whose id is no longer in the catalog are dropped;
// new catalog entries start at zero. The merged list is persisted.
func (m *MissionService) Init() error {
	persisted, err := m.loadPersisted()
	if err != nil {
		return err
	}

	byID := make(map[string]domain.Mission, len(persisted))
	for _, p := range persisted {
		byID[p.ID] = p
	}

	catalog := BuildCatalog()
	for i := range catalog {
		if prev, ok := byID[catalog[i].ID]; ok {
			catalog[i].Progress = prev.Progress
			catalog[i].CompletedAt = prev.CompletedAt
		}
	}

	m.missions = catalog
	m.persist()
	return nil
}

// loadPersisted reads the stored mission list. Corrupt JSON degrades to
// "no prior data".
func (m *MissionService) loadPersisted() ([]domain.Mission, error) {
	raw, err := m.kv.Get(missionsKey)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var missions []domain.Mission
	if err := json.Unmarshal([]byte(raw), &missions); err != nil {
		log.Printf("[tracker] corrupt mission list, rebuilding from catalog: %v", err)
		return nil, nil
	}
	return missions, nil
}

// UpdateFromStats recomputes every mission's progress against the stats
// snapshot. The first time a mission reaches 100 it is stamped with the
// completion time; the stamp is never cleared afterward. The list is
// persisted once iff anything changed, so the call is idempotent.
// Returns the missions newly completed by this update.
func (m *MissionService) UpdateFromStats(stats domain.GamificationStats) []domain.Mission {
	var completed []domain.Mission
	changed := false

	for i := range m.missions {
		mission := &m.missions[i]
		newProgress := progressPct(stats.Value(mission.StatKey), mission.Target)

		if newProgress != mission.Progress {
			mission.Progress = newProgress
			changed = true
		}
		if newProgress >= 100 && mission.CompletedAt.IsZero() {
			mission.CompletedAt = m.clock.Now()
			changed = true
			completed = append(completed, *mission)
		}
	}

	if changed {
		m.persist()
	}
	if len(completed) > 0 {
		metrics.MissionsCompleted.Add(float64(len(completed)))
	}
	return completed
}

// Missions returns the full list in catalog-build order.
func (m *MissionService) Missions() []domain.Mission {
	out := make([]domain.Mission, len(m.missions))
	copy(out, m.missions)
	return out
}

// Active returns incomplete missions sorted ascending by target, capped
// to the nearest 10.
func (m *MissionService) Active() []domain.Mission {
	var active []domain.Mission
	for _, mission := range m.missions {
		if !mission.Completed() {
			active = append(active, mission)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Target < active[j].Target
	})
	if len(active) > activeMissionCap {
		active = active[:activeMissionCap]
	}
	return active
}

// Completed returns completed missions, most recently completed first.
func (m *MissionService) Completed() []domain.Mission {
	var done []domain.Mission
	for _, mission := range m.missions {
		if mission.Completed() {
			done = append(done, mission)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].CompletedAt.After(done[j].CompletedAt)
	})
	return done
}

// LastError returns the most recent persistence failure message, or "".
func (m *MissionService) LastError() string {
	return m.lastErr
}

// persist writes the full mission list in one write.
func (m *MissionService) persist() {
	raw, err := json.Marshal(m.missions)
	if err != nil {
		log.Printf("[tracker] marshal missions: %v", err)
		m.lastErr = "failed to save missions"
		return
	}
	if err := m.kv.Set(missionsKey, string(raw)); err != nil {
		log.Printf("[tracker] save missions: %v", err)
		m.lastErr = "failed to save missions"
		metrics.PersistenceFailures.WithLabelValues("missions").Inc()
		return
	}
	m.lastErr = ""
}

// progressPct computes min(100, round(value/target*100)). A missing stat
// reads as 0; target is always > 0 in the catalog.
func progressPct(value, target int) int {
	if target <= 0 {
		return 100
	}
	pct := int(math.Round(float64(value) / float64(target) * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}
