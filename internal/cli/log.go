package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wellspring-app/wellspring/internal/daemon"
	"github.com/wellspring-app/wellspring/internal/domain"
)

func init() {
	logMoodCmd.Flags().StringVarP(&logMoodValue, "mood", "m", "good", "Mood to record (e.g. great, good, okay, low)")
	logMoodCmd.Flags().StringVar(&logMoodNote, "note", "", "Optional journal note")

	logCmd.AddCommand(logMoodCmd)
	logCmd.AddCommand(logHabitCmd)
	logCmd.AddCommand(logNoteCmd)
	logCmd.AddCommand(logReminderCmd)
	logCmd.AddCommand(logWaterCmd)
	rootCmd.AddCommand(logCmd)
}

var (
	logMoodValue string
	logMoodNote  string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a wellness event",
	Long: `Record a wellness event. Events drive the stat counters, which in
turn drive mission progress and achievement unlocks.`,
}

var logMoodCmd = &cobra.Command{
	Use:   "mood",
	Short: "Log today's mood (journal entry + streak)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogEvent(domain.EventMoodLogged, func(d *daemon.Daemon) error {
			_, err := d.DB.InsertJournalEntry(domain.JournalEntry{
				Mood:      logMoodValue,
				Note:      logMoodNote,
				CreatedAt: time.Now(),
			})
			return err
		})
	},
}

var logHabitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Log a completed habit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogEvent(domain.EventHabitCompleted, nil)
	},
}

var logNoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Log a created note",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogEvent(domain.EventNoteCreated, nil)
	},
}

var logReminderCmd = &cobra.Command{
	Use:   "reminder",
	Short: "Log a completed reminder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogEvent(domain.EventReminderCompleted, nil)
	},
}

var logWaterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log a glass of water",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLogEvent(domain.EventWaterLogged, nil)
	},
}

// runLogEvent registers the event in-process and prints anything worth
// celebrating. The optional before hook runs first; if it fails, no
// counter moves.
func runLogEvent(event domain.EventType, before func(*daemon.Daemon) error) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	if before != nil {
		if err := before(d); err != nil {
			return err
		}
	}

	update, err := d.Tracker.RegisterEvent(event)
	if err != nil {
		return err
	}

	fmt.Printf("Logged %s.\n", event)
	for _, m := range update.CompletedMissions {
		fmt.Printf("  Mission complete: %s (+%d XP)\n", m.Title, m.RewardXP)
	}
	for _, a := range update.UnlockedAchievements {
		fmt.Printf("  Achievement unlocked: %s %s\n", a.Icon, a.Title)
	}
	if msg := d.Tracker.LastError(); msg != "" {
		fmt.Printf("  Warning: %s\n", msg)
	}
	return nil
}
