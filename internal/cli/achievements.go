package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(achievementsCmd)
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and their unlock status",
	RunE:  runAchievements,
}

func runAchievements(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	state := d.Engine.State(cmd.Context())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACHIEVEMENT\tCATEGORY\tREWARD\tSTATUS")
	for _, a := range d.Engine.Catalog() {
		status := "locked"
		if state.HasAchievement(a.ID) {
			status = "unlocked"
		}
		fmt.Fprintf(w, "%s\t%s\t%d XP\t%s\n", a.Title, a.Category, a.XPReward, status)
	}
	return w.Flush()
}
