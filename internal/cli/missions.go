package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wellspring-app/wellspring/internal/daemon"
	"github.com/wellspring-app/wellspring/internal/domain"
)

func init() {
	missionsCmd.Flags().BoolVar(&missionsAll, "all", false, "Show the full catalog, not just active missions")
	missionsCmd.Flags().BoolVar(&missionsCompleted, "completed", false, "Show completed missions, newest first")
	rootCmd.AddCommand(missionsCmd)
}

var (
	missionsAll       bool
	missionsCompleted bool
)

var missionsCmd = &cobra.Command{
	Use:   "missions",
	Short: "List milestone missions",
	RunE:  runMissions,
}

func runMissions(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	var missions []domain.Mission
	switch {
	case missionsCompleted:
		missions = d.Tracker.CompletedMissions()
	case missionsAll:
		missions = d.Tracker.Missions()
	default:
		missions = d.Tracker.ActiveMissions()
	}

	if len(missions) == 0 {
		fmt.Println("Nothing here yet. Run 'wellspring log' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MISSION\tPROGRESS\tXP\tCOMPLETED")
	for _, m := range missions {
		completed := "-"
		if m.Completed() {
			completed = m.CompletedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%d%%\t%d\t%s\n", m.Title, m.Progress, m.RewardXP, completed)
	}
	return w.Flush()
}
