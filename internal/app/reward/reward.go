// Package reward implements the XP and level system. Mission completions
// and achievement unlocks feed XP in; the level is a pure function of
// accumulated XP, so it can never regress.
package reward

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wellspring-app/wellspring/internal/domain"
	"github.com/wellspring-app/wellspring/internal/infra/metrics"
)

// xpKey is the fixed storage key for accumulated XP.
const xpKey = "tracker_xp"

// maxLevel caps the curve.
const maxLevel = 100

// Service manages accumulated XP and the derived level.
type Service struct {
	kv domain.KV
}

// NewService creates a reward service on the given persistence port.
func NewService(kv domain.KV) *Service {
	return &Service{kv: kv}
}

// XPForLevel returns the cumulative XP required to reach a given level.
// Exponential curve: 100 * 1.2^(level-1) for level >= 2.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(100 * math.Pow(1.2, float64(level-1)))
}

// LevelForXP returns the level for a given XP amount. Monotone in XP.
func LevelForXP(xp int64) int {
	level := 1
	for level < maxLevel {
		if xp < XPForLevel(level+1) {
			return level
		}
		level++
	}
	return maxLevel
}

// Current returns the user's current level and XP.
func (s *Service) Current() (domain.UserLevel, error) {
	var ul domain.UserLevel

	raw, err := s.kv.Get(xpKey)
	if err != nil {
		return ul, fmt.Errorf("get xp: %w", err)
	}
	if raw != "" {
		ul.CurrentXP, _ = strconv.ParseInt(raw, 10, 64)
	}

	ul.Level = LevelForXP(ul.CurrentXP)
	return ul, nil
}

// AddXP adds experience points and returns (newLevel, leveledUp, error).
func (s *Service) AddXP(amount int64, source domain.XPSource) (int, bool, error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("xp amount must be positive, got %d", amount)
	}

	current, err := s.Current()
	if err != nil {
		return 0, false, err
	}

	newXP := current.CurrentXP + amount
	if err := s.kv.Set(xpKey, strconv.FormatInt(newXP, 10)); err != nil {
		return 0, false, fmt.Errorf("save xp: %w", err)
	}

	newLevel := LevelForXP(newXP)
	metrics.XPAwarded.WithLabelValues(string(source)).Add(float64(amount))
	metrics.LevelCurrent.Set(float64(newLevel))

	return newLevel, newLevel > current.Level, nil
}

// XPToNextLevel returns XP remaining until the next level.
func (s *Service) XPToNextLevel() (int64, error) {
	current, err := s.Current()
	if err != nil {
		return 0, err
	}
	if current.Level >= maxLevel {
		return 0, nil
	}
	remaining := XPForLevel(current.Level+1) - current.CurrentXP
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ProgressPct returns progress percentage toward the next level (0–100).
func (s *Service) ProgressPct() (float64, error) {
	current, err := s.Current()
	if err != nil {
		return 0, err
	}
	if current.Level >= maxLevel {
		return 100.0, nil
	}
	thisLevel := XPForLevel(current.Level)
	nextLevel := XPForLevel(current.Level + 1)
	span := nextLevel - thisLevel
	if span <= 0 {
		return 100.0, nil
	}
	progress := float64(current.CurrentXP-thisLevel) / float64(span) * 100.0
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress, nil
}
