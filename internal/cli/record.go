package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lingua-network/lingua/internal/domain"
)

func init() {
	recordCmd.Flags().StringVar(&recordDate, "date", "", "Calendar date key YYYY-MM-DD (default today)")
	rootCmd.AddCommand(recordCmd)
}

var recordDate string

var recordCmd = &cobra.Command{
	Use:   "record KIND [AMOUNT]",
	Short: "Record an activity event (message, practice, quiz)",
	Long: `Record one raw activity event and run the full progress flow:
ledger update, XP award, streak advance, achievement evaluation, and
challenge progress.

KIND is one of: message, practice, quiz.
AMOUNT is the message count, practice minutes, or quiz count (default 1).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRecord,
}

func runRecord(cmd *cobra.Command, args []string) error {
	kind := domain.EventKind(args[0])
	amount := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		amount = n
	}

	date := recordDate
	if date == "" {
		date = todayKey()
	}

	d, err := openDaemon()
	if err != nil {
		return err
	}
	defer d.Close()

	outcome, err := d.Recorder.Record(cmd.Context(), kind, date, amount)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s x%d on %s (+%d XP)\n",
		outcome.Event.Kind, outcome.Event.Amount, outcome.Event.Date, outcome.XPEarned)
	if outcome.XP.LeveledUp {
		fmt.Printf("Level up! You are now level %d — %s\n", outcome.XP.Tier.Level, outcome.XP.Tier.Name)
	}
	for _, a := range outcome.Unlocked {
		fmt.Printf("Achievement unlocked: %s (+%d XP)\n", a.Title, a.XPReward)
	}
	for _, c := range outcome.CompletedChallenges {
		fmt.Printf("Challenge complete: %s (+%d XP)\n", c.Description, c.XPReward)
	}

	return nil
}
