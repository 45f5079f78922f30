package progress

import (
	"context"
	"sort"

	"github.com/lingua-network/lingua/internal/domain"
)

// Summarize folds the whole ledger into a rollup view for display.
// The streaks here are derived purely by scanning record dates, which
// makes them an independent cross-check of the incrementally
// maintained PlayerState.StreakDays.
func (e *Engine) Summarize(ctx context.Context, today string) (domain.ProgressSummary, error) {
	if _, err := domain.ParseDay(today); err != nil {
		return domain.ProgressSummary{}, err
	}

	records := e.loadLedger(ctx)

	var summary domain.ProgressSummary
	for _, rec := range records {
		summary.TotalSessions++
		summary.TotalMinutes += rec.PracticeMinutes
		summary.TotalXP += rec.XPEarned
	}

	summary.CurrentStreak, summary.LongestStreak = scanStreaks(records, today)

	weekly, err := e.Window(ctx, 7, today)
	if err != nil {
		return domain.ProgressSummary{}, err
	}
	monthly, err := e.Window(ctx, 30, today)
	if err != nil {
		return domain.ProgressSummary{}, err
	}
	summary.WeeklyData = practiceMinutes(weekly)
	summary.MonthlyData = practiceMinutes(monthly)

	return summary, nil
}

// scanStreaks derives the run lengths of consecutive recorded dates.
// The current streak is the run anchored at today (zero when today has
// no record); the longest streak is the maximum run over all history.
func scanStreaks(records map[string]domain.DailyProgress, today string) (current, longest int) {
	if len(records) == 0 {
		return 0, 0
	}

	dates := make([]string, 0, len(records))
	for date := range records {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	run := 1
	for i := 1; i < len(dates); i++ {
		diff, err := domain.DayDiff(dates[i-1], dates[i])
		if err == nil && diff == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	if longest == 0 {
		longest = 1
	}

	if _, ok := records[today]; ok {
		current = 1
		for d := domain.AddDays(today, -1); ; d = domain.AddDays(d, -1) {
			if _, ok := records[d]; !ok {
				break
			}
			current++
		}
	}
	return current, longest
}

func practiceMinutes(records []domain.DailyProgress) []int {
	out := make([]int, len(records))
	for i, rec := range records {
		out[i] = rec.PracticeMinutes
	}
	return out
}
