package tracker

import (
	"fmt"

	"github.com/wellspring-app/wellspring/internal/domain"
)

// The milestone catalog is regenerated from these tables on every start.
// Mission ids are deterministic ("{category}_{target}") and act as the
// merge key against persisted progress, so changing a threshold retires
// the old mission and introduces a fresh one.

// milestoneCategory is one stat category's threshold table plus the
// hand-authored naming used for titles and descriptions.
type milestoneCategory struct {
	id         string // id prefix, e.g. "habit_total"
	statKey    domain.StatKey
	noun       string // plural noun for descriptions
	verb       string // imperative verb for descriptions
	thresholds []int  // ascending targets
	tiers      []tierBand
}

// tierBand buckets targets up to Max (inclusive) into a named tier.
type tierBand struct {
	Max  int
	Name string
}

// catalogCategories is the fixed category order. Missions are emitted in
// this order, ascending target within each category.
var catalogCategories = []milestoneCategory{
	{
		id: "mood_total", statKey: domain.StatMoodCount,
		noun: "mood entries", verb: "Log",
		thresholds: []int{1, 5, 10, 25, 50, 100, 250},
		tiers: []tierBand{
			{1, "First Steps"}, {10, "Habit Forming"}, {50, "Committed"},
			{200, "Devoted"}, {maxTarget, "Legendary"},
		},
	},
	{
		id: "mood_streak", statKey: domain.StatMoodStreak,
		noun: "days in a row", verb: "Log your mood",
		thresholds: []int{3, 7, 14, 30, 60, 100},
		tiers: []tierBand{
			{3, "First Steps"}, {14, "On a Roll"}, {60, "Unbroken"},
			{maxTarget, "Legendary"},
		},
	},
	{
		id: "habit_total", statKey: domain.StatHabitsCompleted,
		noun: "habits", verb: "Complete",
		thresholds: []int{5, 10, 25, 50, 100, 250},
		tiers: []tierBand{
			{10, "First Steps"}, {50, "Building Momentum"}, {100, "Devoted"},
			{maxTarget, "Legendary"},
		},
	},
	{
		id: "note_total", statKey: domain.StatNotesCreated,
		noun: "notes", verb: "Write",
		thresholds: []int{1, 5, 15, 40, 100},
		tiers: []tierBand{
			{1, "First Steps"}, {15, "Collector"}, {40, "Chronicler"},
			{maxTarget, "Legendary"},
		},
	},
	{
		id: "reminder_total", statKey: domain.StatRemindersCompleted,
		noun: "reminders", verb: "Complete",
		thresholds: []int{5, 15, 40, 100, 250},
		tiers: []tierBand{
			{15, "First Steps"}, {40, "Organized"}, {100, "On Top of It"},
			{maxTarget, "Legendary"},
		},
	},
	{
		id: "water_total", statKey: domain.StatWaterLogged,
		noun: "glasses of water", verb: "Log",
		thresholds: []int{10, 50, 150, 365},
		tiers: []tierBand{
			{10, "First Steps"}, {150, "Hydrated"}, {maxTarget, "Legendary"},
		},
	},
}

// maxTarget is the open-ended ceiling of the last tier and reward band.
const maxTarget = 1<<31 - 1

// BuildCatalog produces the full deterministic mission catalog: every
// threshold of every category, progress 0, not completed.
func BuildCatalog() []domain.Mission {
	var missions []domain.Mission
	for _, cat := range catalogCategories {
		for _, target := range cat.thresholds {
			missions = append(missions, domain.Mission{
				ID:          fmt.Sprintf("%s_%d", cat.id, target),
				Title:       cat.title(target),
				Description: cat.description(target),
				StatKey:     cat.statKey,
				Target:      target,
				Progress:    0,
				RewardXP:    rewardXP(target),
			})
		}
	}
	return missions
}

// title buckets the target into the category's tier naming.
func (c milestoneCategory) title(target int) string {
	return fmt.Sprintf("%s: %d %s", c.tierName(target), target, c.noun)
}

func (c milestoneCategory) description(target int) string {
	return fmt.Sprintf("%s %d %s.", c.verb, target, c.noun)
}

func (c milestoneCategory) tierName(target int) string {
	for _, band := range c.tiers {
		if target <= band.Max {
			return band.Name
		}
	}
	return c.tiers[len(c.tiers)-1].Name
}

// rewardXP is a step function of target: bigger milestones pay more, in
// discrete bands.
func rewardXP(target int) int64 {
	switch {
	case target <= 5:
		return 50
	case target <= 25:
		return 120
	case target <= 100:
		return 300
	case target <= 200:
		return 600
	default:
		return 1000
	}
}
