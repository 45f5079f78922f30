package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(progressCmd)
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show level, XP, and streak",
	RunE:  runProgress,
}

const barWidth = 30 // Characters for the tier progress bar

func runProgress(cmd *cobra.Command, args []string) error {
	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx := cmd.Context()
	state := d.Engine.State(ctx)
	ladder := d.Engine.Ladder()
	tier := ladder.Classify(state.TotalXP)
	prog := ladder.Progress(state.TotalXP)

	fmt.Printf("Level %d — %s\n", tier.Level, tier.Name)
	fmt.Printf("  %s %d/%d XP (%d%%)\n", renderBar(prog.Percentage), prog.Current, prog.Max, prog.Percentage)
	fmt.Printf("Total XP:  %d\n", state.TotalXP)
	fmt.Printf("Streak:    %d day(s)\n", state.StreakDays)
	if state.LastActiveDate != "" {
		fmt.Printf("Last seen: %s\n", state.LastActiveDate)
	}

	return nil
}

// renderBar draws a fixed-width bar: [=========>....................]
func renderBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	filled := pct * barWidth / 100
	switch {
	case filled >= barWidth:
		return "[" + strings.Repeat("=", barWidth) + "]"
	case filled > 0:
		return "[" + strings.Repeat("=", filled-1) + ">" + strings.Repeat(".", barWidth-filled) + "]"
	default:
		return "[" + strings.Repeat(".", barWidth) + "]"
	}
}
