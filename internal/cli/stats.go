package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wellspring-app/wellspring/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(levelCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show wellness counters and level",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	stats := d.Tracker.Stats()
	level, err := d.Reward.Current()
	if err != nil {
		return err
	}
	toNext, err := d.Reward.XPToNextLevel()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Moods logged\t%d\n", stats.MoodCount)
	fmt.Fprintf(w, "Mood streak\t%d days\n", stats.MoodStreak)
	fmt.Fprintf(w, "Habits completed\t%d\n", stats.HabitsCompleted)
	fmt.Fprintf(w, "Notes created\t%d\n", stats.NotesCreated)
	fmt.Fprintf(w, "Reminders done\t%d\n", stats.RemindersCompleted)
	fmt.Fprintf(w, "Water logged\t%d\n", stats.WaterLogged)
	fmt.Fprintf(w, "Level\t%d (%d XP, %d to next)\n", level.Level, level.CurrentXP, toNext)
	return w.Flush()
}

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Show current level and XP progress",
	RunE:  runLevel,
}

func runLevel(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	level, err := d.Reward.Current()
	if err != nil {
		return err
	}
	toNext, err := d.Reward.XPToNextLevel()
	if err != nil {
		return err
	}
	pct, err := d.Reward.ProgressPct()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d — %d XP (%.0f%% to next level, %d XP to go)\n",
		level.Level, level.CurrentXP, pct, toNext)
	return nil
}
