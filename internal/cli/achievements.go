package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wellspring-app/wellspring/internal/daemon"
)

func init() {
	achievementsCmd.AddCommand(achievementsUnlockCmd)
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"badges"},
	Short:   "List achievements (unlocked first)",
	RunE:    runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	achievements := d.Tracker.Achievements()
	if len(achievements) == 0 {
		fmt.Println("No achievements yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tACHIEVEMENT\tPROGRESS\tUNLOCKED")
	for _, a := range achievements {
		unlocked := "-"
		if a.Unlocked() {
			unlocked = a.UnlockedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s %s\t%d%%\t%s\n", a.ID, a.Icon, a.Title, a.Progress, unlocked)
	}
	return w.Flush()
}

var achievementsUnlockCmd = &cobra.Command{
	Use:   "unlock <id>",
	Short: "Force-unlock an achievement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := daemon.New()
		if err != nil {
			return err
		}
		defer d.Close()

		a, err := d.Tracker.UnlockAchievement(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Unlocked: %s %s\n", a.Icon, a.Title)
		return nil
	},
}
