package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/lingua-network/lingua/internal/domain"
)

// The daily ledger is one persisted record per distinct calendar date.
// Upsert overwrites the fields present in the partial update; callers
// wanting increments go through AddProgress, which holds the ledger
// lock across the read and the write.

// Upsert creates or updates the record for a date. Absent fields are
// left untouched; present fields overwrite, never accumulate.
func (e *Engine) Upsert(ctx context.Context, date string, fields domain.DailyFields) (domain.DailyProgress, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.DailyProgress{}, err
	}

	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()

	records := e.loadLedger(ctx)
	rec := records[date]
	rec.Date = date
	if fields.Messages != nil {
		rec.Messages = *fields.Messages
	}
	if fields.PracticeMinutes != nil {
		rec.PracticeMinutes = *fields.PracticeMinutes
	}
	if fields.XPEarned != nil {
		rec.XPEarned = *fields.XPEarned
	}
	records[date] = rec

	if err := e.saveLedger(ctx, records); err != nil {
		return domain.DailyProgress{}, err
	}
	return rec, nil
}

// AddProgress adds delta counters to a date's record in one locked
// read-modify-write. Incrementing callers use this rather than a
// read-then-Upsert pair, which would drop concurrent increments
// between the two lock acquisitions.
func (e *Engine) AddProgress(ctx context.Context, date string, delta domain.DailyProgress) (domain.DailyProgress, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.DailyProgress{}, err
	}

	e.ledgerMu.Lock()
	defer e.ledgerMu.Unlock()

	records := e.loadLedger(ctx)
	rec := records[date]
	rec.Date = date
	rec.Messages += delta.Messages
	rec.PracticeMinutes += delta.PracticeMinutes
	rec.XPEarned += delta.XPEarned
	records[date] = rec

	if err := e.saveLedger(ctx, records); err != nil {
		return domain.DailyProgress{}, err
	}
	return rec, nil
}

// DayProgress returns the record for a date, or the zero-valued
// default when none exists. Never an absent value.
func (e *Engine) DayProgress(ctx context.Context, date string) (domain.DailyProgress, error) {
	if _, err := domain.ParseDay(date); err != nil {
		return domain.DailyProgress{}, err
	}
	records := e.loadLedger(ctx)
	if rec, ok := records[date]; ok {
		return rec, nil
	}
	return domain.DailyProgress{Date: date}, nil
}

// Window returns one record per calendar day in [end-days+1, end],
// oldest first, with zero defaults filling the gaps. The result always
// has exactly days entries.
func (e *Engine) Window(ctx context.Context, days int, end string) ([]domain.DailyProgress, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidWindow
	}
	if _, err := domain.ParseDay(end); err != nil {
		return nil, err
	}

	records := e.loadLedger(ctx)
	out := make([]domain.DailyProgress, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := domain.AddDays(end, -i)
		if rec, ok := records[date]; ok {
			out = append(out, rec)
		} else {
			out = append(out, domain.DailyProgress{Date: date})
		}
	}
	return out, nil
}

// Totals folds lifetime sums over every ledger record.
func (e *Engine) Totals(ctx context.Context) domain.DailyTotals {
	records := e.loadLedger(ctx)
	var t domain.DailyTotals
	for _, rec := range records {
		t.Days++
		t.Messages += rec.Messages
		t.PracticeMinutes += rec.PracticeMinutes
		t.XPEarned += rec.XPEarned
	}
	return t
}

// ─── Internals ──────────────────────────────────────────────────────────────

// loadLedger reads all daily records keyed by date, failing open to an
// empty ledger on read errors or corrupt payloads.
func (e *Engine) loadLedger(ctx context.Context) map[string]domain.DailyProgress {
	records := make(map[string]domain.DailyProgress)

	value, ok, err := e.store.Get(ctx, domain.KeyDailyProgress)
	if err != nil {
		log.Printf("[progress] read ledger: %v (using empty)", err)
		return records
	}
	if !ok {
		return records
	}

	var list []domain.DailyProgress
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		log.Printf("[progress] decode ledger: %v (using empty)", err)
		return records
	}
	for _, rec := range list {
		records[rec.Date] = rec
	}
	return records
}

func (e *Engine) saveLedger(ctx context.Context, records map[string]domain.DailyProgress) error {
	list := make([]domain.DailyProgress, 0, len(records))
	for _, rec := range records {
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date < list[j].Date })

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := e.store.Set(ctx, domain.KeyDailyProgress, string(data)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrLedgerWrite, err)
	}
	return nil
}
