package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wellspring-app/wellspring/internal/domain"
)

// ─── Events ─────────────────────────────────────────────────────────────────

type registerEventRequest struct {
	Type domain.EventType `json:"type"`
}

// registerEventResponse surfaces everything a UI shell needs to celebrate
// in one round trip.
type registerEventResponse struct {
	Stats                domain.GamificationStats `json:"stats"`
	CompletedMissions    []domain.Mission         `json:"completed_missions"`
	UnlockedAchievements []domain.Achievement     `json:"unlocked_achievements"`
}

func (s *Server) handleRegisterEvent(w http.ResponseWriter, r *http.Request) {
	var req registerEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	update, err := s.tracker.RegisterEvent(req.Type)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, registerEventResponse{
		Stats:                update.Stats,
		CompletedMissions:    update.CompletedMissions,
		UnlockedAchievements: update.UnlockedAchievements,
	})
}

// ─── Stats / Summary / Level ────────────────────────────────────────────────

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats": s.tracker.Stats(),
		"error": s.tracker.LastError(),
	})
}

func (s *Server) handleLevel(w http.ResponseWriter, r *http.Request) {
	level, err := s.reward.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	toNext, err := s.reward.XPToNextLevel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	pct, err := s.reward.ProgressPct()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"level":            level.Level,
		"current_xp":       level.CurrentXP,
		"xp_to_next_level": toNext,
		"progress_pct":     pct,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	level, err := s.reward.Current()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	achievements := s.tracker.Achievements()
	unlocked := 0
	for _, a := range achievements {
		if a.Unlocked() {
			unlocked++
		}
	}

	journalCount, err := s.db.JournalEntryCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stats":                 s.tracker.Stats(),
		"level":                 level,
		"active_missions":       s.tracker.ActiveMissions(),
		"completed_missions":    len(s.tracker.CompletedMissions()),
		"achievements_unlocked": unlocked,
		"achievements_total":    len(achievements),
		"journal_entries":       journalCount,
	})
}

// ─── Missions ───────────────────────────────────────────────────────────────

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"missions": s.tracker.Missions(),
	})
}

func (s *Server) handleActiveMissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"missions": s.tracker.ActiveMissions(),
	})
}

func (s *Server) handleCompletedMissions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"missions": s.tracker.CompletedMissions(),
	})
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleListAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": s.tracker.Achievements(),
	})
}

type addAchievementRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Progress    int    `json:"progress"`
	UserID      string `json:"user_id"`
}

func (s *Server) handleAddAchievement(w http.ResponseWriter, r *http.Request) {
	var req addAchievementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := s.tracker.AddAchievement(domain.Achievement{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		Progress:    req.Progress,
		UserID:      req.UserID,
	})
	if err != nil {
		writeAchievementError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleUpdateAchievement(w http.ResponseWriter, r *http.Request) {
	var patch domain.AchievementPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.tracker.UpdateAchievement(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeAchievementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAchievement(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteAchievement(chi.URLParam(r, "id")); err != nil {
		writeAchievementError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type achievementProgressRequest struct {
	Set   *int `json:"set,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

func (s *Server) handleAchievementProgress(w http.ResponseWriter, r *http.Request) {
	var req achievementProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	var (
		updated domain.Achievement
		err     error
	)
	switch {
	case req.Set != nil:
		updated, err = s.tracker.SetAchievementProgress(id, *req.Set)
	case req.Delta != nil:
		updated, err = s.tracker.IncrementAchievementProgress(id, *req.Delta)
	default:
		writeError(w, http.StatusBadRequest, "either set or delta is required")
		return
	}
	if err != nil {
		writeAchievementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleUnlockAchievement(w http.ResponseWriter, r *http.Request) {
	updated, err := s.tracker.UnlockAchievement(chi.URLParam(r, "id"))
	if err != nil {
		writeAchievementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleLockAchievement(w http.ResponseWriter, r *http.Request) {
	updated, err := s.tracker.LockAchievement(chi.URLParam(r, "id"))
	if err != nil {
		writeAchievementError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// writeAchievementError maps domain errors to HTTP status codes.
func writeAchievementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrAchievementNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrDescriptionRequired),
		errors.Is(err, domain.ErrIconRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ─── Journal ────────────────────────────────────────────────────────────────

type addJournalRequest struct {
	Mood string `json:"mood"`
	Note string `json:"note"`
}

// handleAddJournalEntry stores the journal entry, then registers a mood
// event so streaks and milestones move together with the journal. The
// entry is inserted first: the counters only move once a journal row
// exists.
func (s *Server) handleAddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req addJournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Mood == "" {
		writeError(w, http.StatusBadRequest, "mood is required")
		return
	}

	entry := domain.JournalEntry{
		Mood:      req.Mood,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}
	id, err := s.db.InsertJournalEntry(entry)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	entry.ID = id

	update, err := s.tracker.RegisterEvent(domain.EventMoodLogged)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"entry":                 entry,
		"completed_missions":    update.CompletedMissions,
		"unlocked_achievements": update.UnlockedAchievements,
	})
}

func (s *Server) handleListJournal(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	entries, err := s.db.ListJournalEntries(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// ─── Notifications ──────────────────────────────────────────────────────────

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	pending, err := s.notify.Pending(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notify.MarkShown(id); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusOK)
}

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
