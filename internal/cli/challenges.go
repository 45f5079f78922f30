package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(challengesCmd)
}

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "Show this week's challenges",
	RunE:  runChallenges,
}

func runChallenges(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	if d.Challenges == nil {
		fmt.Println("Challenges are disabled in config.")
		return nil
	}

	active, err := d.Challenges.GenerateWeekly()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Println("No active challenges this week.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHALLENGE\tPROGRESS\tREWARD\tEXPIRES")
	for _, ch := range active {
		expires := ch.ExpiresAt.Format("2006-01-02")
		if ch.IsExpired() {
			expires = "expired"
		}
		fmt.Fprintf(w, "%s\t%d/%d (%.0f%%)\t%d XP\t%s\n",
			ch.Description, ch.Progress, ch.Target, ch.ProgressPct(), ch.XPReward, expires)
	}
	return w.Flush()
}
