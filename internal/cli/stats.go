package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lifetime totals and streak history",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	summary, err := d.Engine.Summarize(cmd.Context(), todayKey())
	if err != nil {
		return err
	}

	fmt.Printf("Current streak:  %d days\n", summary.CurrentStreak)
	fmt.Printf("Longest streak:  %d days\n", summary.LongestStreak)
	fmt.Printf("Total XP:        %d\n", summary.TotalXP)
	fmt.Printf("Active days:     %d\n", summary.TotalSessions)
	fmt.Printf("Practice time:   %d min\n", summary.TotalMinutes)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LAST 7 DAYS\tMINUTES")
	for i, minutes := range summary.WeeklyData {
		fmt.Fprintf(w, "%d days ago\t%d\n", len(summary.WeeklyData)-1-i, minutes)
	}
	return w.Flush()
}
